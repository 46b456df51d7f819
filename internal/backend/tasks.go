package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mp-classroom/classroom-gateway/internal/models"
)

// ProfessorTasks lists the task definitions a professor owns.
func (c *Client) ProfessorTasks(ctx context.Context, tok string, userID int) ([]models.Task, error) {
	var out []models.Task
	if err := c.getJSON(ctx, fmt.Sprintf("/%d/tasks", userID), tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentTasks lists a student's submissions by github login.
func (c *Client) StudentTasks(ctx context.Context, tok, githubLogin string) ([]models.Task, error) {
	path := "/user/get-tasks/" + url.PathEscape(githubLogin)
	var out []models.Task
	if err := c.getJSON(ctx, path, tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddTask registers a new classroom assignment.
func (c *Client) AddTask(ctx context.Context, tok, name, link, branch string, taskID, ownerID int) error {
	in := map[string]interface{}{
		"name":    name,
		"link":    link,
		"branch":  branch,
		"taskId":  taskID,
		"ownerId": ownerID,
	}
	return c.postJSON(ctx, "/testing/add-task", tok, in, nil)
}

// UpdateTask edits an existing task definition.
func (c *Client) UpdateTask(ctx context.Context, tok string, id int, name, link, branch string) error {
	in := map[string]interface{}{
		"id":     id,
		"name":   name,
		"link":   link,
		"branch": branch,
	}
	return c.postJSON(ctx, "/user/task/update", tok, in, nil)
}

// DeleteTask removes a task definition.
func (c *Client) DeleteTask(ctx context.Context, tok string, id int) error {
	return c.deleteJSON(ctx, "/user/task/delete", tok, map[string]int{"id": id})
}

// ToggleCopyCheck flips a submission's membership in the copy-check queue.
func (c *Client) ToggleCopyCheck(ctx context.Context, tok string, id int) error {
	return c.getJSON(ctx, fmt.Sprintf("/user/add-check/%d", id), tok, nil)
}
