package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func getWithCookie(t *testing.T, env *testEnv, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: cookie})
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestSessionReturnsNavigationForRole(t *testing.T) {
	var hits int64
	env := newTestEnv(t, classroomStub(&hits))

	w := getWithCookie(t, env, "/api/session?path=/tasks", "abc123")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		User struct {
			Github string `json:"github"`
		} `json:"user"`
		Links []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		} `json:"links"`
		Active       int `json:"active"`
		Capabilities struct {
			ManageTasks bool `json:"manageTasks"`
		} `json:"capabilities"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.User.Github != "prof1" {
		t.Errorf("user github = %q, want prof1", resp.User.Github)
	}
	// localized role label resolves to the professor set
	want := []string{"/user", "/tasks", "/add-task", "/tests", "/add-test"}
	if len(resp.Links) != len(want) {
		t.Fatalf("got %d links, want %d", len(resp.Links), len(want))
	}
	for i, p := range want {
		if resp.Links[i].Path != p {
			t.Errorf("links[%d].path = %q, want %q", i, resp.Links[i].Path, p)
		}
	}
	if resp.Active != 1 {
		t.Errorf("active = %d, want 1 for /tasks", resp.Active)
	}
	if !resp.Capabilities.ManageTasks {
		t.Error("professor must have manageTasks")
	}
}

func TestSessionWithoutTokenIsUnauthorized(t *testing.T) {
	var hits int64
	env := newTestEnv(t, classroomStub(&hits))

	w := getWithCookie(t, env, "/api/session", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Redirect != "/" {
		t.Errorf("redirect hint = %q, want /", resp.Redirect)
	}
}

func TestSessionCachedAfterFirstResolve(t *testing.T) {
	var hits int64
	env := newTestEnv(t, classroomStub(&hits))

	if w := getWithCookie(t, env, "/api/session", "abc123"); w.Code != http.StatusOK {
		t.Fatalf("first status = %d", w.Code)
	}
	first := hits
	if w := getWithCookie(t, env, "/api/session", "abc123"); w.Code != http.StatusOK {
		t.Fatalf("second status = %d", w.Code)
	}
	if hits != first {
		t.Errorf("second session read hit the backend (%d -> %d hits), want it served from the store", first, hits)
	}
}
