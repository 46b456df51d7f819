package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/mp-classroom/classroom-gateway/internal/models"
)

// Tests lists the test definitions a professor uploaded.
func (c *Client) Tests(ctx context.Context, tok string, userID int) ([]models.Test, error) {
	var out []models.Test
	if err := c.getJSON(ctx, fmt.Sprintf("/user/%d/tests", userID), tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Participants lists (task, student) pairs across the cohort.
func (c *Client) Participants(ctx context.Context, tok string) ([]models.Participant, error) {
	var out []models.Participant
	if err := c.getJSON(ctx, "/user/participants", tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadTest sends a test definition file plus metadata as multipart form
// data. taskIDs is serialized to a JSON array, matching the backend contract.
func (c *Client) UploadTest(ctx context.Context, tok, title, description string, userID int, taskIDs []int, filename string, file io.Reader) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("backend: multipart file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("backend: copy upload: %w", err)
	}

	ids, err := json.Marshal(taskIDs)
	if err != nil {
		return fmt.Errorf("backend: marshal task ids: %w", err)
	}

	fields := map[string]string{
		"title":       title,
		"description": description,
		"userId":      fmt.Sprintf("%d", userID),
		"taskIds":     string(ids),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("backend: multipart field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("backend: close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/user/upload-test", tok, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, nil)
}

// ValidateHTML triggers markup validation for one student's submission.
func (c *Client) ValidateHTML(ctx context.Context, tok, githubLogin string, taskID int) (*models.ValidationReport, error) {
	in := map[string]interface{}{"githubLogin": githubLogin, "taskId": taskID}
	var out models.ValidationReport
	if err := c.postJSON(ctx, "/testing/validate-html", tok, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunTest executes an uploaded test suite against its linked submissions.
func (c *Client) RunTest(ctx context.Context, tok string, testID int) ([]models.TestResult, error) {
	var out []models.TestResult
	if err := c.getJSON(ctx, fmt.Sprintf("/testing/run/%d", testID), tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentRunTest executes the tests linked to a task against one student's
// own submission.
func (c *Client) StudentRunTest(ctx context.Context, tok string, taskID int, githubLogin string) ([]models.TestResult, error) {
	path := fmt.Sprintf("/testing/student-run/%d/%s", taskID, url.PathEscape(githubLogin))
	var out []models.TestResult
	if err := c.getJSON(ctx, path, tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Anomalies lists flagged commit irregularities across the cohort.
func (c *Client) Anomalies(ctx context.Context, tok string) ([]models.Anomaly, error) {
	var out []models.Anomaly
	if err := c.getJSON(ctx, "/testing/get-anomalies", tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Copies lists detected pairwise submission similarities.
func (c *Client) Copies(ctx context.Context, tok string) ([]models.Copy, error) {
	var out []models.Copy
	if err := c.getJSON(ctx, "/testing/get-copies", tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}
