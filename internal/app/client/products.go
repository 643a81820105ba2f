package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
)

func productPath(id string) string {
	return "/admin/products/" + url.PathEscape(id)
}

// productQuery keeps limit and offset first and appends only the filters
// that are set.
func productQuery(q dto.ProductQuery) string {
	query := pageQuery(q.Limit, q.Offset)
	for _, p := range []struct{ key, value string }{
		{"platform", q.Platform},
		{"category", q.Category},
		{"search", q.Search},
	} {
		if p.value != "" {
			query += "&" + p.key + "=" + url.QueryEscape(p.value)
		}
	}
	return query
}

func (c *Client) GetProducts(ctx context.Context, q dto.ProductQuery) (*dto.Page[ds.Product], error) {
	var page dto.Page[ds.Product]
	if err := c.request(ctx, http.MethodGet, "/admin/products?"+productQuery(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*ds.Product, error) {
	var product ds.Product
	if err := c.request(ctx, http.MethodGet, productPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct posts a multipart body built by form.ProductForm.Encode.
// contentType must carry the multipart boundary.
func (c *Client) CreateProduct(ctx context.Context, body io.Reader, contentType string) (map[string]interface{}, error) {
	return c.upload(ctx, http.MethodPost, "/admin/products", body, contentType)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, body io.Reader, contentType string) (map[string]interface{}, error) {
	return c.upload(ctx, http.MethodPut, productPath(id), body, contentType)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := c.request(ctx, http.MethodDelete, productPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
