package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
)

// decode unwraps the envelope in resp and stores its data in v. An empty
// body or missing data leaves v untouched.
func decode(resp *transport.Response, v any) error {
	if resp == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	var env models.Envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	if !env.Success {
		return fmt.Errorf("%w: %s", ErrRejected, env.Message)
	}
	if v == nil || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: decode data: %w", ErrUnexpectedResponse, err)
	}
	return nil
}

// Message returns the backend's explanation for a failed request, if the
// error body carries one.
func Message(err error) string {
	var se *transport.StatusError
	if !errors.As(err, &se) {
		return ""
	}
	var env models.Envelope
	if json.Unmarshal(se.Body, &env) != nil {
		return ""
	}
	return env.Message
}

func get[T any](ctx context.Context, c *APIClient, path string, query url.Values) (T, error) {
	var out T
	req := transport.NewRequest("GET", path)
	req.Query = query
	resp, err := c.Do(ctx, req)
	if err != nil {
		return out, err
	}
	err = decode(resp, &out)
	return out, err
}

func sendJSON[T any](ctx context.Context, c *APIClient, method, path string, body any) (T, error) {
	var out T
	req, err := transport.NewJSONRequest(method, path, body)
	if err != nil {
		return out, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return out, err
	}
	err = decode(resp, &out)
	return out, err
}

func sendForm[T any](ctx context.Context, c *APIClient, method, path string, form *transport.Form) (T, error) {
	var out T
	resp, err := c.Do(ctx, transport.NewFormRequest(method, path, form))
	if err != nil {
		return out, err
	}
	err = decode(resp, &out)
	return out, err
}

func remove(ctx context.Context, c *APIClient, path string) error {
	resp, err := c.Do(ctx, transport.NewRequest("DELETE", path))
	if err != nil {
		return err
	}
	return decode(resp, nil)
}
