package models

type Role string

const (
	RoleStudent       Role = "student"
	RoleProfessor     Role = "professor"
	RoleAdministrator Role = "administrator"
	RoleMentor        Role = "mentor"
)

// localized role labels as the classroom backend reports them
const (
	labelStudent       = "студент"
	labelProfessor     = "преподаватель"
	labelAdministrator = "администратор"
	labelMentor        = "наставник"
)

// ParseRole maps a backend role label to the closed role set. Both the
// localized labels and the canonical tags are accepted; anything else
// collapses to the empty Role, which renders as a guest everywhere.
func ParseRole(label string) Role {
	switch label {
	case labelStudent, string(RoleStudent):
		return RoleStudent
	case labelProfessor, string(RoleProfessor):
		return RoleProfessor
	case labelAdministrator, string(RoleAdministrator):
		return RoleAdministrator
	case labelMentor, string(RoleMentor):
		return RoleMentor
	}
	return ""
}

// User is the session-scoped projection of the backend user record.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Github  string `json:"github"`
	Group   string `json:"group"`
	Role    string `json:"role"`
}

func (u *User) ParsedRole() Role {
	if u == nil {
		return ""
	}
	return ParseRole(u.Role)
}

// UnapprovedUser is returned by the admin approval listing.
type UnapprovedUser struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Github  string `json:"github"`
}
