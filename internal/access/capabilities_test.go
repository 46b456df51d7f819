package access

import (
	"testing"

	"github.com/mp-classroom/classroom-gateway/internal/models"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		want Capabilities
	}{
		{
			name: "student runs only own tests",
			role: models.RoleStudent,
			want: Capabilities{RunOwnTests: true},
		},
		{
			name: "professor manages tasks and tests",
			role: models.RoleProfessor,
			want: Capabilities{ManageTasks: true, ManageTests: true, ViewAllRecords: true, ExportReports: true},
		},
		{
			name: "administrator approves users",
			role: models.RoleAdministrator,
			want: Capabilities{ApproveUsers: true, ViewAllRecords: true, ExportReports: true},
		},
		{
			name: "mentor views and exports",
			role: models.RoleMentor,
			want: Capabilities{ViewAllRecords: true, ExportReports: true},
		},
		{
			name: "unknown role gets nothing",
			role: "janitor",
			want: Capabilities{},
		},
		{
			name: "empty role gets nothing",
			role: "",
			want: Capabilities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := For(tt.role); got != tt.want {
				t.Errorf("For(%q) = %+v, want %+v", tt.role, got, tt.want)
			}
		})
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	// localized backend labels resolve to the same capabilities as canonical tags
	pairs := [][2]string{
		{"студент", "student"},
		{"преподаватель", "professor"},
		{"администратор", "administrator"},
		{"наставник", "mentor"},
	}
	for _, p := range pairs {
		localized := For(models.ParseRole(p[0]))
		canonical := For(models.ParseRole(p[1]))
		if localized != canonical {
			t.Errorf("capabilities for %q and %q differ: %+v vs %+v", p[0], p[1], localized, canonical)
		}
	}
}
