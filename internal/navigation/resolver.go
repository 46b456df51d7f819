// Package navigation maps a role to its permitted destinations. The table is
// fixed; an unknown or absent role yields no links, which renders as a guest
// header.
package navigation

import "github.com/mp-classroom/classroom-gateway/internal/models"

// Link is one navigational destination in display order.
type Link struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

var roleLinks = map[models.Role][]Link{
	models.RoleStudent: {
		{Name: "Главная", Path: "/user"},
		{Name: "Задания", Path: "/tasks"},
		{Name: "Тесты", Path: "/tests"},
	},
	models.RoleProfessor: {
		{Name: "Главная", Path: "/user"},
		{Name: "Задания", Path: "/tasks"},
		{Name: "Добавить задание", Path: "/add-task"},
		{Name: "Тесты", Path: "/tests"},
		{Name: "Добавить тест", Path: "/add-test"},
	},
	models.RoleAdministrator: {
		{Name: "Главная", Path: "/user"},
	},
	models.RoleMentor: {
		{Name: "Главная", Path: "/user"},
		{Name: "Студенты", Path: "/users"},
		{Name: "Статистика", Path: "/stats"},
	},
}

// LinksFor returns the ordered navigation for a role. The slice is a copy;
// callers may not mutate the table through it.
func LinksFor(role models.Role) []Link {
	links, ok := roleLinks[role]
	if !ok {
		return nil
	}
	out := make([]Link, len(links))
	copy(out, links)
	return out
}

// Active returns the index of the link whose path exactly matches the
// current path, or -1 when none does. No match is not an error; the header
// simply highlights nothing.
func Active(links []Link, currentPath string) int {
	for i, l := range links {
		if l.Path == currentPath {
			return i
		}
	}
	return -1
}
