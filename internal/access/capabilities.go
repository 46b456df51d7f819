// Package access resolves a role into the set of actions a request may
// perform. Handlers consume the resolved set once per request instead of
// re-checking role labels at every branch.
package access

import "github.com/mp-classroom/classroom-gateway/internal/models"

// Capabilities is the permitted-action set for one role.
type Capabilities struct {
	ManageTasks    bool `json:"manageTasks"`    // create and edit task definitions
	ManageTests    bool `json:"manageTests"`    // upload test suites, run them against any student
	RunOwnTests    bool `json:"runOwnTests"`    // run tests against own submissions only
	ApproveUsers   bool `json:"approveUsers"`   // admin approval workflow
	ViewAllRecords bool `json:"viewAllRecords"` // anomalies and copies across the whole cohort
	ExportReports  bool `json:"exportReports"`  // xlsx report export
}

var byRole = map[models.Role]Capabilities{
	models.RoleStudent: {
		RunOwnTests: true,
	},
	models.RoleProfessor: {
		ManageTasks:    true,
		ManageTests:    true,
		ViewAllRecords: true,
		ExportReports:  true,
	},
	models.RoleAdministrator: {
		ApproveUsers:   true,
		ViewAllRecords: true,
		ExportReports:  true,
	},
	models.RoleMentor: {
		ViewAllRecords: true,
		ExportReports:  true,
	},
}

// For resolves the capabilities of a role. Unknown roles get the zero set,
// equivalent to a guest.
func For(role models.Role) Capabilities {
	return byRole[role]
}
