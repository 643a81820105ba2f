package client

import (
	"context"
	"net/http"
	"net/url"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
)

func (c *Client) GetAllOrders(ctx context.Context, limit, offset int) (*dto.Page[ds.Order], error) {
	var page dto.Page[ds.Order]
	if err := c.request(ctx, http.MethodGet, "/admin/orders?"+pageQuery(limit, offset), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPaidOrders lists orders the backend has already filtered to paid.
func (c *Client) GetPaidOrders(ctx context.Context, limit, offset int) (*dto.Page[ds.Order], error) {
	var page dto.Page[ds.Order]
	if err := c.request(ctx, http.MethodGet, "/admin/orders/paid?"+pageQuery(limit, offset), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdateLicenseRedeemed(ctx context.Context, orderID string, redeemed bool) (*ds.Order, error) {
	var order ds.Order
	endpoint := "/admin/orders/" + url.PathEscape(orderID) + "/license"
	if err := c.request(ctx, http.MethodPatch, endpoint, dto.LicenseRedeemedRequest{Redeemed: redeemed}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateLicense issues a license for userID on productID. A nil total lets
// the backend charge the product price; a zero total is sent as 0.
func (c *Client) CreateLicense(ctx context.Context, productID, userID string, total *float64) (*ds.Order, error) {
	var order ds.Order
	err := c.request(ctx, http.MethodPost, "/admin/licenses", dto.CreateLicenseRequest{
		ProductID: productID,
		UserID:    userID,
		Total:     total,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
