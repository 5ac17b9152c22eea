package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/common"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
	"github.com/google/uuid"
)

// Transport sends a single request. Implementations must not retry.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 10 << 20

// ErrBodyTooLarge is returned when a response body exceeds the read limit.
var ErrBodyTooLarge = errors.New("response body too large")

type HTTPTransport struct {
	base    *url.URL
	client  *http.Client
	log     logging.Logger
	maxBody int64
}

func NewHTTPTransport(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPTransport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTPTransport{
		base:   u,
		client:  &http.Client{Timeout: timeout},
		log:     log,
		maxBody: maxBodySize,
	}, nil
}

// Do sends req. A non-2xx response is returned together with a
// *StatusError so callers can inspect both.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := t.build(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, t.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", req.Method, req.Path, err)
	}
	if int64(len(body)) > t.maxBody {
		return nil, fmt.Errorf("%s %s: %w (limit %d bytes)", req.Method, req.Path, ErrBodyTooLarge, t.maxBody)
	}

	logCtx := logging.ContextWithRequestID(ctx, httpReq.Header.Get(common.RequestIDHeaderName))
	t.log.Debug(logCtx, "api request",
		"method", req.Method,
		"path", req.Path,
		"status", httpResp.StatusCode,
		"duration", time.Since(start),
	)

	resp := &Response{Status: httpResp.StatusCode, Header: httpResp.Header, Body: body}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, &StatusError{Method: req.Method, Path: req.Path, Status: httpResp.StatusCode, Body: body}
	}
	return resp, nil
}

func (t *HTTPTransport) build(ctx context.Context, req *Request) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimPrefix(req.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", req.Path, err)
	}
	u := t.base.ResolveReference(ref)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		b, ct, err := encodeForm(req.Form)
		if err != nil {
			return nil, err
		}
		body, contentType = bytes.NewReader(b), ct
	case req.Body != nil:
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set(common.ContentTypeHeaderName, contentType)
	}
	if httpReq.Header.Get(common.RequestIDHeaderName) == "" {
		httpReq.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	return httpReq, nil
}

func encodeForm(f *Form) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, field := range f.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", field.Name, err)
		}
	}
	if f.File != nil {
		part, err := w.CreateFormFile(f.File.FieldName, f.File.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(f.File.Content); err != nil {
			return nil, "", fmt.Errorf("write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
