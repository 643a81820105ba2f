package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
	"marketadmin/internal/app/form"
	"marketadmin/internal/app/session"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method      string
	Path        string
	RawQuery    string
	Auth        string
	ContentType string
	Body        string
}

// backend records every request and replies with the configured status and
// body.
type backend struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
}

func newBackend(t *testing.T, status int, body string) (*backend, *httptest.Server) {
	b := &backend{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, recorded{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			Auth:        r.Header.Get("Authorization"),
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(data),
		})
		status, body := b.status, b.body
		b.mu.Unlock()

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) reply(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status, b.body = status, body
}

func (b *backend) last(t *testing.T) recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.requests)
	return b.requests[len(b.requests)-1]
}

func newTestClient(t *testing.T, srv *httptest.Server, store session.TokenStore) *Client {
	sess, err := session.New(context.Background(), store)
	require.NoError(t, err)
	return New(srv.URL+"/api", sess)
}

const userJSON = `{"id":"u-1","email":"a@b.c","name":"Ann","role":"admin","is_active":true,"is_verified":true}`

func TestAuthorizationHeaderFollowsToken(t *testing.T) {
	ctx := context.Background()
	b, srv := newBackend(t, http.StatusOK, `[]`)
	c := newTestClient(t, srv, nil)

	_, err := c.GetCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, b.last(t).Auth)
	assert.Equal(t, "application/json", b.last(t).ContentType)

	require.NoError(t, c.SetToken(ctx, "tok-1"))
	_, err = c.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", b.last(t).Auth)

	require.NoError(t, c.ClearToken(ctx))
	_, err = c.GetCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, b.last(t).Auth)
}

func TestAdminLoginStoresToken(t *testing.T) {
	ctx := context.Background()
	b, srv := newBackend(t, http.StatusOK, `{"token":"jwt-abc","user":`+userJSON+`}`)
	store := session.NewMemoryStore()
	c := newTestClient(t, srv, store)

	resp, err := c.AdminLogin(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", resp.Token)
	assert.Equal(t, "u-1", resp.User.ID)

	login := b.last(t)
	assert.Equal(t, http.MethodPost, login.Method)
	assert.Equal(t, "/api/admin/login", login.Path)
	assert.JSONEq(t, `{"email":"a@b.c","password":"secret"}`, login.Body)

	saved, _ := store.Load(ctx)
	assert.Equal(t, "jwt-abc", saved)

	b.reply(http.StatusOK, `{"data":[],"total":0}`)
	_, err = c.GetUsers(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-abc", b.last(t).Auth)
}

func TestAdminLoginWithoutTokenLeavesSession(t *testing.T) {
	_, srv := newBackend(t, http.StatusOK, `{"token":"","user":`+userJSON+`}`)
	c := newTestClient(t, srv, nil)

	_, err := c.AdminLogin(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.False(t, c.Session().HasToken())
}

func TestAdminLoginWithoutUserIsMalformed(t *testing.T) {
	ctx := context.Background()
	_, srv := newBackend(t, http.StatusOK, `{"token":"jwt-abc"}`)
	store := session.NewMemoryStore()
	c := newTestClient(t, srv, store)

	resp, err := c.AdminLogin(ctx, "a@b.c", "secret")
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Nil(t, resp)
	assert.False(t, c.Session().HasToken(), "a rejected login body does not sign in")
	saved, _ := store.Load(ctx)
	assert.Empty(t, saved)

	sess, err := session.New(ctx, nil)
	require.NoError(t, err)
	lenient := New(srv.URL+"/api", sess, WithValidation(false))
	resp, err = lenient.AdminLogin(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	assert.Empty(t, resp.User.ID)
	assert.Equal(t, "jwt-abc", lenient.Session().Token())
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"invalid credentials"}`, "invalid credentials"},
		{"unparseable", `<html>bad gateway</html>`, MessageUnknownError},
		{"empty body", ``, MessageUnknownError},
		{"no error field", `{"message":"nope"}`, MessageRequestFailed},
		{"empty error", `{"error":""}`, MessageRequestFailed},
		{"json array", `[]`, MessageRequestFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newBackend(t, http.StatusUnauthorized, tt.body)
			c := newTestClient(t, srv, nil)

			_, err := c.AdminLogin(context.Background(), "a@b.c", "wrong")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
			assert.False(t, c.Session().HasToken())
		})
	}
}

func TestTransportErrorIsNotRequestError(t *testing.T) {
	_, srv := newBackend(t, http.StatusOK, `[]`)
	c := newTestClient(t, srv, nil)
	srv.Close()

	_, err := c.GetCategories(context.Background())
	require.Error(t, err)
	assert.False(t, IsRequestError(err))
}

func TestGetProductsQuery(t *testing.T) {
	ctx := context.Background()
	b, srv := newBackend(t, http.StatusOK, `{"data":[],"total":0}`)
	c := newTestClient(t, srv, nil)

	_, err := c.GetProducts(ctx, dto.ProductQuery{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/products", b.last(t).Path)
	assert.Equal(t, "limit=10&offset=20", b.last(t).RawQuery)

	_, err = c.GetProducts(ctx, dto.ProductQuery{Limit: 5, Platform: "p-1", Category: "c-1", Search: "photo editor"})
	require.NoError(t, err)
	assert.Equal(t, "limit=5&offset=0&platform=p-1&category=c-1&search=photo+editor", b.last(t).RawQuery)

	_, err = c.GetProducts(ctx, dto.ProductQuery{Search: "x"})
	require.NoError(t, err)
	assert.Equal(t, "limit=10&offset=0&search=x", b.last(t).RawQuery)
}

func TestCreateLicenseTotal(t *testing.T) {
	ctx := context.Background()
	b, srv := newBackend(t, http.StatusOK, `{"id":"o-1","status":"paid","total":0}`)
	c := newTestClient(t, srv, nil)

	_, err := c.CreateLicense(ctx, "p-1", "u-1", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":"p-1","user_id":"u-1"}`, b.last(t).Body)
	assert.NotContains(t, b.last(t).Body, "total")

	zero := 0.0
	_, err = c.CreateLicense(ctx, "p-1", "u-1", &zero)
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":"p-1","user_id":"u-1","total":0}`, b.last(t).Body)

	price := 99000.0
	order, err := c.CreateLicense(ctx, "p-1", "u-1", &price)
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":"p-1","user_id":"u-1","total":99000}`, b.last(t).Body)
	assert.Equal(t, ds.OrderStatusPaid, order.Status)
}

func TestTokenSurvivesReload(t *testing.T) {
	ctx := context.Background()
	b, srv := newBackend(t, http.StatusOK, `[]`)
	fs := afero.NewMemMapFs()
	const path = "/home/admin/.marketadmin/admin_token"

	first := newTestClient(t, srv, session.NewFileStore(fs, path))
	require.NoError(t, first.SetToken(ctx, "persisted-tok"))

	reloaded := newTestClient(t, srv, session.NewFileStore(fs, path))
	_, err := reloaded.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer persisted-tok", b.last(t).Auth)
}

func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	b, srv := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(t, srv, nil)

	name := "Budi"
	active := false

	tests := []struct {
		name   string
		body   string
		call   func() error
		method string
		path   string
		query  string
		sent   string
	}{
		{
			name: "register", body: `{"message":"ok","user":` + userJSON + `}`,
			call:   func() error { _, err := c.AdminRegister(ctx, "a@b.c", "pw", "Ann"); return err },
			method: http.MethodPost, path: "/api/admin/register",
			sent: `{"email":"a@b.c","password":"pw","name":"Ann"}`,
		},
		{
			name: "users", body: `{"data":[` + userJSON + `],"total":1}`,
			call:   func() error { _, err := c.GetUsers(ctx, 0, 0); return err },
			method: http.MethodGet, path: "/api/admin/users", query: "limit=10&offset=0",
		},
		{
			name: "user", body: userJSON,
			call:   func() error { _, err := c.GetUser(ctx, "u-1"); return err },
			method: http.MethodGet, path: "/api/admin/users/u-1",
		},
		{
			name: "update user", body: userJSON,
			call: func() error {
				_, err := c.UpdateUser(ctx, "u-1", dto.UpdateUserRequest{Name: &name, IsActive: &active})
				return err
			},
			method: http.MethodPut, path: "/api/admin/users/u-1",
			sent: `{"name":"Budi","is_active":false}`,
		},
		{
			name: "user password", body: `{"message":"password updated"}`,
			call:   func() error { _, err := c.UpdateUserPassword(ctx, "u-1", "n3w"); return err },
			method: http.MethodPut, path: "/api/admin/users/u-1/password",
			sent: `{"password":"n3w"}`,
		},
		{
			name: "delete user", body: `{"message":"deleted"}`,
			call:   func() error { _, err := c.DeleteUser(ctx, "u-1"); return err },
			method: http.MethodDelete, path: "/api/admin/users/u-1",
		},
		{
			name: "category", body: `{"id":"c-1","name":"Games","slug":"games"}`,
			call:   func() error { _, err := c.GetCategory(ctx, "c-1"); return err },
			method: http.MethodGet, path: "/api/admin/categories/c-1",
		},
		{
			name: "create category", body: `{"id":"c-1","name":"Games","slug":"games"}`,
			call:   func() error { _, err := c.CreateCategory(ctx, "Games"); return err },
			method: http.MethodPost, path: "/api/admin/categories",
			sent: `{"name":"Games"}`,
		},
		{
			name: "update category", body: `{"id":"c-1","name":"Apps","slug":"apps"}`,
			call:   func() error { _, err := c.UpdateCategory(ctx, "c-1", "Apps"); return err },
			method: http.MethodPut, path: "/api/admin/categories/c-1",
			sent: `{"name":"Apps"}`,
		},
		{
			name: "delete category", body: `{"message":"deleted"}`,
			call:   func() error { _, err := c.DeleteCategory(ctx, "c-1"); return err },
			method: http.MethodDelete, path: "/api/admin/categories/c-1",
		},
		{
			name: "product", body: `{"id":"p-1","name":"Editor","price":150000,"platforms":[{"id":"pl-1","name":"web"}]}`,
			call:   func() error { _, err := c.GetProduct(ctx, "p-1"); return err },
			method: http.MethodGet, path: "/api/admin/products/p-1",
		},
		{
			name: "delete product", body: `{"message":"deleted"}`,
			call:   func() error { _, err := c.DeleteProduct(ctx, "p-1"); return err },
			method: http.MethodDelete, path: "/api/admin/products/p-1",
		},
		{
			name: "pending payments", body: `{"data":[{"id":"pay-1","order_id":"o-1","status":"pending"}],"total":1}`,
			call:   func() error { _, err := c.GetPendingPayments(ctx, 20, 40); return err },
			method: http.MethodGet, path: "/api/admin/payments/pending", query: "limit=20&offset=40",
		},
		{
			name: "payment", body: `{"id":"pay-1","order_id":"o-1","status":"pending","transfer_proof":"proof.pdf"}`,
			call:   func() error { _, err := c.GetPayment(ctx, "pay-1"); return err },
			method: http.MethodGet, path: "/api/admin/payments/pay-1",
		},
		{
			name: "approve payment", body: `{"id":"pay-1","order_id":"o-1","status":"approved"}`,
			call: func() error {
				_, err := c.ApprovePayment(ctx, "pay-1", ds.PaymentStatusApproved)
				return err
			},
			method: http.MethodPatch, path: "/api/admin/payments/pay-1/approve",
			sent: `{"status":"approved"}`,
		},
		{
			name: "orders", body: `{"data":[{"id":"o-1","status":"refunded"}],"total":1}`,
			call:   func() error { _, err := c.GetAllOrders(ctx, 10, 10); return err },
			method: http.MethodGet, path: "/api/admin/orders", query: "limit=10&offset=10",
		},
		{
			name: "paid orders", body: `{"data":[],"total":0}`,
			call:   func() error { _, err := c.GetPaidOrders(ctx, 10, 0); return err },
			method: http.MethodGet, path: "/api/admin/orders/paid", query: "limit=10&offset=0",
		},
		{
			name: "license redeemed", body: `{"id":"o-1","status":"paid","license_id":"lic","license_redeemed":true}`,
			call:   func() error { _, err := c.UpdateLicenseRedeemed(ctx, "o-1", true); return err },
			method: http.MethodPatch, path: "/api/admin/orders/o-1/license",
			sent: `{"redeemed":true}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.reply(http.StatusOK, tt.body)
			require.NoError(t, tt.call())

			got := b.last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.query, got.RawQuery)
			if tt.sent != "" {
				assert.JSONEq(t, tt.sent, got.Body)
			} else {
				assert.Empty(t, got.Body)
			}
		})
	}
}

func TestApprovePaymentRejectsUnknownStatus(t *testing.T) {
	b, srv := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(t, srv, nil)

	_, err := c.ApprovePayment(context.Background(), "pay-1", ds.PaymentStatusPending)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, b.requests)
}

func TestMalformedResponse(t *testing.T) {
	ctx := context.Background()

	_, srv := newBackend(t, http.StatusOK, `{"data":"nope","total":1}`)
	c := newTestClient(t, srv, nil)
	_, err := c.GetUsers(ctx, 10, 0)
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.False(t, IsRequestError(err))

	_, srv = newBackend(t, http.StatusOK, `{"name":"no id"}`)
	c = newTestClient(t, srv, nil)
	_, err = c.GetUser(ctx, "u-1")
	require.ErrorIs(t, err, ErrMalformedResponse)

	_, srv = newBackend(t, http.StatusOK, `[{"id":"c-1"},{"name":"missing id"}]`)
	c = newTestClient(t, srv, nil)
	_, err = c.GetCategories(ctx)
	require.ErrorIs(t, err, ErrMalformedResponse)

	_, srv = newBackend(t, http.StatusOK, `{"id":"pay-1","order_id":"o-1","status":"refunded"}`)
	c = newTestClient(t, srv, nil)
	_, err = c.GetPayment(ctx, "pay-1")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestValidationCanBeDisabled(t *testing.T) {
	_, srv := newBackend(t, http.StatusOK, `{"name":"no id"}`)
	sess, err := session.New(context.Background(), nil)
	require.NoError(t, err)
	c := New(srv.URL+"/api", sess, WithValidation(false))

	user, err := c.GetUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "no id", user.Name)
}

func TestUnknownOrderStatusPassesValidation(t *testing.T) {
	_, srv := newBackend(t, http.StatusOK, `{"data":[{"id":"o-1","status":"refunded"}],"total":1}`)
	c := newTestClient(t, srv, nil)

	page, err := c.GetAllOrders(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.False(t, page.Data[0].Status.IsKnown())
	assert.Equal(t, "refunded", page.Data[0].Status.String())
}

func TestUploadProduct(t *testing.T) {
	ctx := context.Background()
	b, srv := newBackend(t, http.StatusCreated, `{"id":"p-9","name":"Editor"}`)
	c := newTestClient(t, srv, nil)
	require.NoError(t, c.SetToken(ctx, "tok"))

	f := form.ProductForm{Name: "Editor", Price: 150000, PlatformIDs: []string{"pl-1"}, IsActive: true}
	body, contentType, err := f.Encode()
	require.NoError(t, err)

	out, err := c.CreateProduct(ctx, body, contentType)
	require.NoError(t, err)
	assert.Equal(t, "p-9", out["id"])

	got := b.last(t)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/admin/products", got.Path)
	assert.Equal(t, "Bearer tok", got.Auth)
	assert.Equal(t, contentType, got.ContentType)
	assert.True(t, strings.HasPrefix(got.ContentType, "multipart/form-data; boundary="))
	assert.Contains(t, got.Body, `["pl-1"]`)

	body, contentType, err = f.Encode()
	require.NoError(t, err)
	b.reply(http.StatusOK, `{"id":"p-9"}`)
	_, err = c.UpdateProduct(ctx, "p-9", body, contentType)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, b.last(t).Method)
	assert.Equal(t, "/api/admin/products/p-9", b.last(t).Path)
}

func TestUploadFailureIsRequestError(t *testing.T) {
	_, srv := newBackend(t, http.StatusBadRequest, `{"error":"name is required"}`)
	c := newTestClient(t, srv, nil)

	_, err := c.CreateProduct(context.Background(), strings.NewReader(""), "multipart/form-data; boundary=x")
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
	assert.True(t, IsRequestError(err))
}

func TestContextCancellation(t *testing.T) {
	_, srv := newBackend(t, http.StatusOK, `[]`)
	c := newTestClient(t, srv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetCategories(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
