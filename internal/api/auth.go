package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/netdash/netdash/internal/model"
)

// Login authenticates with the backend and returns the token and user record.
func (c *Client) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	req := model.LoginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp, false); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, &Error{StatusCode: apiErr.StatusCode, Message: msgInvalidCredentials}
		}
		return nil, err
	}

	return &resp, nil
}

// Me fetches the user record for the current session.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users lists all user accounts (admin only).
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/users", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a new user account (admin only).
func (c *Client) CreateUser(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	req := model.CreateUserRequest{
		Username: strings.TrimSpace(username),
		Password: password,
		Role:     role,
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var user model.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/users", req, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user account (admin only).
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return &Error{Message: "user id is required"}
	}
	return c.do(ctx, http.MethodDelete, "/api/auth/users/"+userID, nil, nil, true)
}

// ChangePassword sets a new password for a user (admin only).
func (c *Client) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if userID == "" {
		return &Error{Message: "user id is required"}
	}
	req := model.ChangePasswordRequest{NewPassword: newPassword}
	if err := validateStruct(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/auth/users/"+userID+"/password", req, nil, true)
}
