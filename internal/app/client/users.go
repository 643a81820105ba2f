package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
)

func pageQuery(limit, offset int) string {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return fmt.Sprintf("limit=%d&offset=%d", limit, offset)
}

func userPath(id string) string {
	return "/admin/users/" + url.PathEscape(id)
}

func (c *Client) GetUsers(ctx context.Context, limit, offset int) (*dto.Page[ds.User], error) {
	var page dto.Page[ds.User]
	if err := c.request(ctx, http.MethodGet, "/admin/users?"+pageQuery(limit, offset), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*ds.User, error) {
	var user ds.User
	if err := c.request(ctx, http.MethodGet, userPath(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser sends only the fields set in req.
func (c *Client) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*ds.User, error) {
	var user ds.User
	if err := c.request(ctx, http.MethodPut, userPath(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword sets a new password without any current-password check.
func (c *Client) UpdateUserPassword(ctx context.Context, id, password string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	err := c.request(ctx, http.MethodPut, userPath(id)+"/password", dto.UpdatePasswordRequest{Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := c.request(ctx, http.MethodDelete, userPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
