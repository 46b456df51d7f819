package backend

import (
	"context"
	"fmt"

	"github.com/mp-classroom/classroom-gateway/internal/models"
)

// LoginResult is either a token or a rejection message, never both.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

// Login exchanges credentials for a bearer token. A rejected login is not an
// error at this layer: the result carries the backend's message instead.
func (c *Client) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	in := map[string]string{"identifier": identifier, "password": password}

	var out LoginResult
	err := c.postJSON(ctx, "/authorization/login", "", in, &out)
	if err != nil {
		if be, ok := AsError(err); ok {
			// backend signals rejections with a message body and a
			// non-2xx status; surface the message, not the status
			return &LoginResult{Message: be.Message}, nil
		}
		return nil, err
	}
	return &out, nil
}

// RegisterPayload mirrors the backend registration contract.
type RegisterPayload struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Group       string `json:"group"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Github      string `json:"github"`
	IsProfessor bool   `json:"isProfessor"`
}

// Register submits a registration and returns the backend's outcome message.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (string, error) {
	var out messageBody
	err := c.postJSON(ctx, "/authorization/register", "", payload, &out)
	if err != nil {
		if be, ok := AsError(err); ok && be.Message != "" {
			return be.Message, nil
		}
		return "", err
	}
	return out.Message, nil
}

// GetUser fetches the user record the token belongs to.
func (c *Client) GetUser(ctx context.Context, tok string) (*models.User, error) {
	var u models.User
	if err := c.getJSON(ctx, "/user/get-user", tok, &u); err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("backend: no user for token")
	}
	return &u, nil
}

// UpdateUser applies a profile edit.
func (c *Client) UpdateUser(ctx context.Context, tok string, id int, name, surname, github string) error {
	in := map[string]interface{}{
		"id":      id,
		"name":    name,
		"surname": surname,
		"github":  github,
	}
	return c.postJSON(ctx, "/user/update", tok, in, nil)
}

// UnapprovedUsers lists accounts awaiting manual activation.
func (c *Client) UnapprovedUsers(ctx context.Context, tok string) ([]models.UnapprovedUser, error) {
	var out []models.UnapprovedUser
	if err := c.getJSON(ctx, "/user/unapproved", tok, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveUser activates a pending account.
func (c *Client) ApproveUser(ctx context.Context, tok string, id int) error {
	return c.getJSON(ctx, fmt.Sprintf("/user/approve/%d", id), tok, nil)
}
