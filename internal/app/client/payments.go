package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
)

func paymentPath(id string) string {
	return "/admin/payments/" + url.PathEscape(id)
}

func (c *Client) GetPendingPayments(ctx context.Context, limit, offset int) (*dto.Page[ds.Payment], error) {
	var page dto.Page[ds.Payment]
	if err := c.request(ctx, http.MethodGet, "/admin/payments/pending?"+pageQuery(limit, offset), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetPayment(ctx context.Context, id string) (*ds.Payment, error) {
	var payment ds.Payment
	if err := c.request(ctx, http.MethodGet, paymentPath(id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ApprovePayment records the admin decision on a manual transfer. Only
// approved and rejected are accepted; anything else fails without a request.
func (c *Client) ApprovePayment(ctx context.Context, id string, status ds.PaymentStatus) (*ds.Payment, error) {
	if !status.IsDecision() {
		return nil, fmt.Errorf("%w: payment status %q", ErrInvalidArgument, status)
	}

	var payment ds.Payment
	if err := c.request(ctx, http.MethodPatch, paymentPath(id)+"/approve", dto.ApprovePaymentRequest{Status: status}, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
