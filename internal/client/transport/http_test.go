package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/common"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T, h http.HandlerFunc) *HTTPTransport {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tr, err := NewHTTPTransport(srv.URL+"/api", 5*time.Second, logging.Nop())
	require.NoError(t, err)
	return tr
}

func TestNewHTTPTransport_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPTransport("localhost/api", time.Second, logging.Nop())
	require.Error(t, err)
}

func TestHTTPTransport_JSONRequest(t *testing.T) {
	var (
		gotPath, gotQuery, gotBody, gotCT, gotReqID string
		gotMethod                                   string
	)
	tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotCT = r.Header.Get(common.ContentTypeHeaderName)
		gotReqID = r.Header.Get(common.RequestIDHeaderName)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("X-Test", "1")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	req, err := NewJSONRequest(http.MethodPost, "inquiries", map[string]string{"name": "Ann"})
	require.NoError(t, err)
	req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	req.Query = url.Values{"handled": {"true"}}

	resp, err := tr.Do(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/inquiries", gotPath)
	assert.Equal(t, "handled=true", gotQuery)
	assert.JSONEq(t, `{"name":"Ann"}`, gotBody)
	assert.Equal(t, common.JSONContentType, gotCT)
	_, err = uuid.Parse(gotReqID)
	assert.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "1", resp.Header.Get("X-Test"))
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestHTTPTransport_KeepsCallerRequestID(t *testing.T) {
	var got string
	tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(common.RequestIDHeaderName)
	})

	req := NewRequest(http.MethodGet, "services")
	req.Header.Set(common.RequestIDHeaderName, "fixed-id")
	_, err := tr.Do(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", got)
}

func TestHTTPTransport_Multipart(t *testing.T) {
	var (
		fields   map[string]string
		fileName string
		fileBody string
	)
	tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.Header.Get(common.ContentTypeHeaderName), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		fileName, fileBody = hdr.Filename, string(b)
	})

	form := (&Form{}).Add("title", "SEO").Add("slug", "seo").Add("fullDesc", "")
	form.File = &File{FieldName: "file", FileName: "cover.png", Content: []byte("PNG")}

	_, err := tr.Do(context.Background(), NewFormRequest(http.MethodPost, "services", form))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"title": "SEO", "slug": "seo"}, fields)
	assert.Equal(t, "cover.png", fileName)
	assert.Equal(t, "PNG", fileBody)
}

func TestHTTPTransport_NonSuccessReturnsStatusError(t *testing.T) {
	tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"expired"}`))
	})

	resp, err := tr.Do(context.Background(), NewRequest(http.MethodGet, "blog"))
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, IsStatus(err, http.StatusForbidden))
	assert.EqualError(t, err, "GET blog: 401 Unauthorized")
}

func TestHTTPTransport_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	tr, err := NewHTTPTransport(srv.URL, time.Second, logging.Nop())
	require.NoError(t, err)

	resp, err := tr.Do(context.Background(), NewRequest(http.MethodGet, "services"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.False(t, IsStatus(err, http.StatusUnauthorized))
}

func TestHTTPTransport_BodyLimit(t *testing.T) {
	tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 16)))
	})

	tr.maxBody = 16
	resp, err := tr.Do(context.Background(), NewRequest(http.MethodGet, "services"))
	require.NoError(t, err)
	assert.Len(t, resp.Body, 16)

	tr.maxBody = 15
	resp, err = tr.Do(context.Background(), NewRequest(http.MethodGet, "services"))
	require.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Nil(t, resp)
}

func TestRequest_CloneIsolatesHeaders(t *testing.T) {
	r := NewRequest(http.MethodGet, "services")
	r.Header.Set("A", "1")
	r.Query = url.Values{"q": {"x"}}

	c := r.Clone()
	c.Header.Set("A", "2")
	c.Query.Set("q", "y")

	assert.Equal(t, "1", r.Header.Get("A"))
	assert.Equal(t, "x", r.Query.Get("q"))
	assert.False(t, c.IsMultipart())
}
