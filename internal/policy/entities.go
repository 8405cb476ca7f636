package policy

import (
	"strconv"

	"github.com/cedar-policy/cedar-go"
	"github.com/yukikurage/worklog-api/internal/models"
)

var entityTypes = map[Kind]cedar.EntityType{
	KindTask:    "Task",
	KindHourLog: "HourLog",
	KindReport:  "Report",
	KindUser:    "User",
}

func userUID(id models.UserID) cedar.EntityUID {
	return cedar.NewEntityUID("User", cedar.String(strconv.FormatUint(uint64(id), 10)))
}

// resourceUID names the request resource. List operations target the
// collection of a kind rather than a record.
func resourceUID(req Request) cedar.EntityUID {
	if req.Operation == OpList {
		return cedar.NewEntityUID("Collection", cedar.String(string(req.Resource.Kind)))
	}
	if req.Resource.Kind == KindUser {
		return userUID(models.UserID(req.Resource.ID))
	}
	return cedar.NewEntityUID(entityTypes[req.Resource.Kind], cedar.String(strconv.FormatUint(req.Resource.ID, 10)))
}

// buildEntities constructs the entity graph for a request: the caller and,
// for owned records, the record with its owner attribute.
func buildEntities(req Request) cedar.EntityMap {
	entities := cedar.EntityMap{}

	principal := userUID(req.Caller.ID)
	resource := resourceUID(req)

	switch {
	case req.Operation == OpList:
		entities[resource] = cedar.Entity{
			UID:        resource,
			Attributes: cedar.NewRecord(cedar.RecordMap{}),
		}
	case req.Resource.Kind == KindUser:
		if resource != principal {
			entities[resource] = cedar.Entity{
				UID:        resource,
				Attributes: cedar.NewRecord(cedar.RecordMap{}),
			}
		}
	default:
		entities[resource] = cedar.Entity{
			UID: resource,
			Attributes: cedar.NewRecord(cedar.RecordMap{
				"owner": userUID(req.Resource.Owner),
			}),
		}
	}

	entities[principal] = cedar.Entity{
		UID: principal,
		Attributes: cedar.NewRecord(cedar.RecordMap{
			"role": cedar.String(string(req.Caller.Role)),
		}),
	}

	return entities
}

func buildCedarRequest(req Request) cedar.Request {
	return cedar.Request{
		Principal: userUID(req.Caller.ID),
		Action:    cedar.NewEntityUID("Action", cedar.String(Action(req.Resource.Kind, req.Operation))),
		Resource:  resourceUID(req),
		Context: cedar.NewRecord(cedar.RecordMap{
			"status_only":    cedar.Boolean(req.Context.StatusOnly),
			"status_changed": cedar.Boolean(req.Context.StatusChanged),
		}),
	}
}
