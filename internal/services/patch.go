package services

import (
	"encoding/json"
	"strings"

	"github.com/yukikurage/worklog-api/internal/models"
	"github.com/yukikurage/worklog-api/internal/utils"
)

// Patch is a raw JSON object from an update request, keyed by field name.
type Patch map[string]json.RawMessage

// Has reports whether key was sent.
func (p Patch) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Only reports whether key is the single field sent.
func (p Patch) Only(key string) bool {
	return len(p) == 1 && p.Has(key)
}

// String decodes key as a string. ok is false when the key is absent or not a string.
func (p Patch) String(key string) (string, bool) {
	raw, present := p[key]
	if !present {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

type fieldDecoder func(field string, raw json.RawMessage) (interface{}, error)

type patchField struct {
	column string
	decode fieldDecoder
}

// columns decodes the known fields of p into column updates. Unknown and
// read-only fields are ignored.
func (p Patch) columns(fields map[string]patchField) (map[string]interface{}, error) {
	updates := make(map[string]interface{}, len(p))
	for key, raw := range p {
		f, ok := fields[key]
		if !ok {
			continue
		}
		value, err := f.decode(key, raw)
		if err != nil {
			return nil, err
		}
		updates[f.column] = value
	}
	return updates, nil
}

func requiredString(field string, raw json.RawMessage) (interface{}, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &FieldError{Field: field, Reason: "must be a string"}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &FieldError{Field: field, Reason: "must not be empty"}
	}
	return s, nil
}

func enumOf[T ~string](valid func(T) bool) fieldDecoder {
	return func(field string, raw json.RawMessage) (interface{}, error) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || !valid(T(s)) {
			return nil, &FieldError{Field: field, Reason: "unknown value"}
		}
		return T(s), nil
	}
}

func dateValue(field string, raw json.RawMessage) (interface{}, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &FieldError{Field: field, Reason: "must be a date string"}
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return nil, &FieldError{Field: field, Reason: "must be a date"}
	}
	return t, nil
}

func positiveHours(field string, raw json.RawMessage) (interface{}, error) {
	var h float64
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, &FieldError{Field: field, Reason: "must be a number"}
	}
	if err := validateHours(h); err != nil {
		return nil, err
	}
	return h, nil
}

func validateHours(h float64) error {
	if h <= 0 {
		return &FieldError{Field: "hours", Reason: "must be greater than 0"}
	}
	return nil
}

var taskPatchFields = map[string]patchField{
	"title":       {column: "title", decode: requiredString},
	"description": {column: "description", decode: requiredString},
	"status":      {column: "status", decode: enumOf(models.TaskStatus.Valid)},
	"priority":    {column: "priority", decode: enumOf(models.TaskPriority.Valid)},
	"due_date":    {column: "due_date", decode: dateValue},
}

var hourLogPatchFields = map[string]patchField{
	"date":        {column: "date", decode: dateValue},
	"hours":       {column: "hours", decode: positiveHours},
	"description": {column: "description", decode: requiredString},
}

var reportPatchFields = map[string]patchField{
	"title":   {column: "title", decode: requiredString},
	"content": {column: "content", decode: requiredString},
	"status":  {column: "status", decode: enumOf(models.ReportStatus.Valid)},
}

// userPatchFields excludes password, which is hashed separately.
var userPatchFields = map[string]patchField{
	"name":  {column: "name", decode: requiredString},
	"email": {column: "email", decode: requiredString},
	"role":  {column: "role", decode: enumOf(models.Role.Valid)},
}
