package policy

// Action returns the Cedar action id for a kind and operation, e.g. "report:submit".
func Action(kind Kind, op Operation) string {
	return string(kind) + ":" + string(op)
}

// validActions lists every action a policy may grant. Anything else is
// denied before evaluation.
var validActions = map[string]bool{
	Action(KindTask, OpRead):   true,
	Action(KindTask, OpUpdate): true,
	Action(KindTask, OpDelete): true,

	Action(KindHourLog, OpRead):   true,
	Action(KindHourLog, OpUpdate): true,
	Action(KindHourLog, OpDelete): true,

	Action(KindReport, OpList):   true,
	Action(KindReport, OpRead):   true,
	Action(KindReport, OpUpdate): true,
	Action(KindReport, OpDelete): true,
	Action(KindReport, OpSubmit): true,

	Action(KindUser, OpList):       true,
	Action(KindUser, OpRead):       true,
	Action(KindUser, OpUpdate):     true,
	Action(KindUser, OpChangeRole): true,
	Action(KindUser, OpDelete):     true,
}

// IsValidAction reports whether the kind/operation pair is known.
func IsValidAction(kind Kind, op Operation) bool {
	return validActions[Action(kind, op)]
}

// Policy ids whose forbid decisions carry a specific meaning.
const (
	PolicyReportStatusOnly = "report-status-only"
	PolicyUserNoSelfDelete = "user-no-self-delete"
)

var forbidReasons = map[string]ReasonType{
	PolicyReportStatusOnly: ReasonStatusOnly,
	PolicyUserNoSelfDelete: ReasonSelfDeletion,
}

var reasonMessages = map[ReasonType]string{
	ReasonAllowed:       "access permitted",
	ReasonPolicyDenied:  "Not authorized",
	ReasonStatusOnly:    "Only status can be updated by managers/admins",
	ReasonSelfDeletion:  "You cannot delete yourself",
	ReasonUnknownAction: "Not authorized",
}
