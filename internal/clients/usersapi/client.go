// Package usersapi is a typed client for the users HTTP API.
package usersapi

import (
	"context"
	"time"

	"github.com/google/uuid"

	appuser "assustadus/internal/app/user"
	userhandler "assustadus/internal/http/handlers/user"
	"assustadus/internal/httpclient"
	"assustadus/internal/logging"
)

type Client struct {
	http   *httpclient.Client
	logger logging.Logger
}

type (
	User           = appuser.UserDto
	CreateRequest  = appuser.CreateUserInput
	UpdateRequest  = userhandler.UpdateUserRequest
	DeleteResponse = appuser.DeletedUserDto
)

func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	httpCli, err := httpclient.New(baseURL, timeout, logger.With("component", "users_http"))
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   httpCli,
		logger: logger,
	}, nil
}

func userPath(id uuid.UUID) string {
	return "/users/" + id.String()
}

func (c *Client) Greeting(ctx context.Context) (string, error) {
	return c.http.GetText(ctx, "/")
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (User, error) {
	var res User
	err := c.http.PostJSON(ctx, "/users", req, &res)
	return res, err
}

func (c *Client) List(ctx context.Context) ([]User, error) {
	var res []User
	err := c.http.GetJSON(ctx, "/users", nil, &res)
	return res, err
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (User, error) {
	var res User
	err := c.http.GetJSON(ctx, userPath(id), nil, &res)
	return res, err
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (User, error) {
	var res User
	err := c.http.PatchJSON(ctx, userPath(id), req, &res)
	return res, err
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) (DeleteResponse, error) {
	var res DeleteResponse
	err := c.http.DeleteJSON(ctx, userPath(id), &res)
	return res, err
}
