package client

import (
	"context"
	"net/http"

	"marketadmin/internal/app/dto"
)

// AdminLogin authenticates an admin. A non-empty token in the response is
// stored in the session, so the next call on this client already carries it.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	err := c.request(ctx, http.MethodPost, "/admin/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Token != "" {
		if err := c.session.SetToken(ctx, resp.Token); err != nil {
			// the token is held in memory, only persistence failed
			c.log.WithError(err).Warn("persist admin token")
		}
	}
	return &resp, nil
}

func (c *Client) AdminRegister(ctx context.Context, email, password, name string) (*dto.RegisterResponse, error) {
	var resp dto.RegisterResponse
	err := c.request(ctx, http.MethodPost, "/admin/register", dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
