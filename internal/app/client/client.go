// Package client is the typed client of the marketplace admin API. It is the
// single place where admin tooling talks to the backend: it builds URLs,
// attaches the bearer token, decodes JSON and turns failures into
// *RequestError.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"marketadmin/internal/app/session"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultPageSize is the limit used when a list call passes limit <= 0.
const DefaultPageSize = 10

type Client struct {
	baseURL    string
	session    *session.Session
	httpClient *http.Client
	log        *logrus.Entry
	validate   *validator.Validate
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient. The client sets no timeout of
// its own; give the http.Client one if requests must not hang.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(entry *logrus.Entry) Option {
	return func(c *Client) {
		c.log = entry
	}
}

// WithValidation toggles shape validation of decoded responses. It is on by
// default.
func WithValidation(enabled bool) Option {
	return func(c *Client) {
		if enabled {
			c.validate = validator.New()
		} else {
			c.validate = nil
		}
	}
}

// New creates a client for baseURL (e.g. http://localhost:8081/api). The
// base URL cannot be changed afterwards. A nil session keeps the token in
// memory only.
func New(baseURL string, sess *session.Session, opts ...Option) *Client {
	if sess == nil {
		// a memory store never fails to load
		sess, _ = session.New(context.Background(), nil)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    sess,
		httpClient: http.DefaultClient,
		log:        logrus.WithField("component", "admin-client"),
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Session() *session.Session {
	return c.session
}

// SetToken stores the token in memory and persists it.
func (c *Client) SetToken(ctx context.Context, token string) error {
	return c.session.SetToken(ctx, token)
}

// ClearToken drops the token from memory and from persistent storage.
func (c *Client) ClearToken(ctx context.Context) error {
	return c.session.ClearToken(ctx)
}

func (c *Client) authorize(req *http.Request) {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// request is the JSON path every typed method except the uploads goes
// through. body may be nil; out may be nil when the response is ignored.
func (c *Client) request(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	data, err := c.do(req, endpoint)
	if err != nil {
		return err
	}
	return c.decode(data, out)
}

// upload sends a pre-built multipart body. Only the auth header and the
// body's own content type (which carries the boundary) are set. Failures
// are reported exactly like the JSON path.
func (c *Client) upload(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(req)

	data, err := c.do(req, endpoint)
	if err != nil {
		return nil, err
	}

	var out map[string]interface{}
	if err := c.decode(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do executes req and returns the body of a 2xx response. Transport errors
// are wrapped with %w so callers can still inspect them.
func (c *Client) do(req *http.Request, endpoint string) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Warnf("%s %s failed", req.Method, endpoint)
		return nil, fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", req.Method, endpoint, err)
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     endpoint,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
		entry.Warnf("request failed: %s", reqErr.Message)
		return nil, reqErr
	}

	entry.Debug("request ok")
	return data, nil
}

// errorMessage extracts the "error" field of a failure body. A body that is
// not JSON yields MessageUnknownError; JSON without a usable error field
// yields MessageRequestFailed.
func errorMessage(data []byte) string {
	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return MessageUnknownError
	}
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return MessageRequestFailed
	}
	switch v := obj["error"].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64, bool:
		if v != false && v != 0.0 {
			return fmt.Sprint(v)
		}
	}
	return MessageRequestFailed
}

func (c *Client) decode(data []byte, out interface{}) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return malformed("%v", err)
	}
	if c.validate == nil {
		return nil
	}
	if err := c.validateValue(reflect.ValueOf(out)); err != nil {
		return malformed("%v", err)
	}
	return nil
}

// validateValue checks structs, and structs inside slices, against their
// validate tags. Maps and scalars pass through.
func (c *Client) validateValue(v reflect.Value) error {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return c.validate.Struct(v.Addr().Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := c.validateValue(v.Index(i).Addr()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}
