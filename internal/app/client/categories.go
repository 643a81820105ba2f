package client

import (
	"context"
	"net/http"
	"net/url"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
)

func categoryPath(id string) string {
	return "/admin/categories/" + url.PathEscape(id)
}

// GetCategories returns the full, unpaginated category list.
func (c *Client) GetCategories(ctx context.Context) ([]ds.Category, error) {
	var categories []ds.Category
	if err := c.request(ctx, http.MethodGet, "/admin/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*ds.Category, error) {
	var category ds.Category
	if err := c.request(ctx, http.MethodGet, categoryPath(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*ds.Category, error) {
	var category ds.Category
	if err := c.request(ctx, http.MethodPost, "/admin/categories", dto.CategoryRequest{Name: name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id, name string) (*ds.Category, error) {
	var category ds.Category
	if err := c.request(ctx, http.MethodPut, categoryPath(id), dto.CategoryRequest{Name: name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := c.request(ctx, http.MethodDelete, categoryPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
