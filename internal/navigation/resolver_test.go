package navigation

import (
	"reflect"
	"testing"

	"github.com/mp-classroom/classroom-gateway/internal/models"
)

func TestLinksFor(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		want []Link
	}{
		{
			name: "student",
			role: models.RoleStudent,
			want: []Link{
				{Name: "Главная", Path: "/user"},
				{Name: "Задания", Path: "/tasks"},
				{Name: "Тесты", Path: "/tests"},
			},
		},
		{
			name: "professor",
			role: models.RoleProfessor,
			want: []Link{
				{Name: "Главная", Path: "/user"},
				{Name: "Задания", Path: "/tasks"},
				{Name: "Добавить задание", Path: "/add-task"},
				{Name: "Тесты", Path: "/tests"},
				{Name: "Добавить тест", Path: "/add-test"},
			},
		},
		{
			name: "administrator",
			role: models.RoleAdministrator,
			want: []Link{
				{Name: "Главная", Path: "/user"},
			},
		},
		{
			name: "mentor",
			role: models.RoleMentor,
			want: []Link{
				{Name: "Главная", Path: "/user"},
				{Name: "Студенты", Path: "/users"},
				{Name: "Статистика", Path: "/stats"},
			},
		},
		{
			name: "unset role",
			role: "",
			want: nil,
		},
		{
			name: "unknown role",
			role: "janitor",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinksFor(tt.role)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LinksFor(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestLinksForReturnsCopy(t *testing.T) {
	links := LinksFor(models.RoleStudent)
	links[0].Path = "/mutated"

	again := LinksFor(models.RoleStudent)
	if again[0].Path != "/user" {
		t.Errorf("table mutated through returned slice: %v", again[0])
	}
}

func TestActive(t *testing.T) {
	links := LinksFor(models.RoleProfessor)

	tests := []struct {
		path string
		want int
	}{
		{"/user", 0},
		{"/tasks", 1},
		{"/add-task", 2},
		{"/tests", 3},
		{"/add-test", 4},
		{"/unknown", -1},
		{"/tasks/", -1}, // exact match only
		{"", -1},
	}

	for _, tt := range tests {
		if got := Active(links, tt.path); got != tt.want {
			t.Errorf("Active(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestActiveEmptyLinks(t *testing.T) {
	if got := Active(nil, "/user"); got != -1 {
		t.Errorf("Active(nil) = %d, want -1", got)
	}
}
