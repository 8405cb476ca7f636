// Package policy is the authorization decision point for worklog resources.
//
// Every ownership and role check on Tasks, Hour Logs, Reports and Users is
// answered by Engine.Decide. The rules live in the embedded Cedar policy
// set (one file per policy, the file name being the policy id):
//
//   - owner-access: the owner may read, update, delete (and submit) their
//     own Task, HourLog and Report records.
//   - elevated-report-read: managers and admins read and list every Report.
//   - elevated-report-status: managers and admins may update a Report they
//     do not own...
//   - report-status-only: ...but only when the request changes the status
//     field alone to a new value.
//   - user-self-access: a user reads and updates their own profile.
//   - elevated-user-access: managers and admins list, read and delete users.
//   - admin-user-update: admins update any user, including roles.
//   - user-no-self-delete: nobody deletes their own account.
//
// Anything not permitted is denied. The engine never touches persistence;
// callers load the record first and pass its owner in the Request.
//
// Engine is safe for concurrent use. The underlying Cedar PolicySet is not
// modified after construction.
package policy
