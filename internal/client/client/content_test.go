package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture records the last request the server saw.
type capture struct {
	method string
	path   string
	query  string
	auth   string
	form   map[string]string
	file   string
	body   []byte
}

func captureServer(t *testing.T, c *capture, data any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.query = r.URL.RawQuery
		c.auth = r.Header.Get("Authorization")
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				c.form = map[string]string{}
				for k, v := range r.MultipartForm.Value {
					c.form[k] = v[0]
				}
				if fh, ok := r.MultipartForm.File["file"]; ok {
					f, _ := fh[0].Open()
					b, _ := io.ReadAll(f)
					f.Close()
					c.file = fh[0].Filename + ":" + string(b)
				}
			}
		} else {
			c.body, _ = io.ReadAll(r.Body)
		}
		writeEnvelope(w, http.StatusOK, true, "", data)
	}))
}

func TestCreateService_SendsMultipart(t *testing.T) {
	var got capture
	srv := captureServer(t, &got, map[string]string{"_id": "s1", "title": "SEO"})
	defer srv.Close()

	c, _, _ := newTestClient(t, srv.URL, "a1", "r1")
	svc, err := c.CreateService(context.Background(),
		models.Service{Title: "SEO", Slug: "seo", ShortDesc: "Rank higher"},
		&transport.File{FieldName: "file", FileName: "seo.png", Content: []byte("png")},
	)
	require.NoError(t, err)
	assert.Equal(t, "s1", svc.ID)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/services", got.path)
	assert.Equal(t, "Bearer a1", got.auth)
	assert.Equal(t, map[string]string{"title": "SEO", "slug": "seo", "shortDesc": "Rank higher"}, got.form)
	assert.Equal(t, "seo.png:png", got.file)
}

func TestUpdateBlogPost_EncodesTagsAndCategory(t *testing.T) {
	var got capture
	srv := captureServer(t, &got, map[string]string{"_id": "b1"})
	defer srv.Close()

	c, _, _ := newTestClient(t, srv.URL, "a1", "r1")
	_, err := c.UpdateBlogPost(context.Background(), "b1", models.BlogPost{
		Title:    "Hello World",
		Slug:     "hello-world",
		Content:  "# Hi",
		Tags:     []string{"go", "web"},
		Status:   models.BlogStatusPublished,
		Category: &models.Category{ID: "c1"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/blog/b1", got.path)
	assert.Equal(t, `["go","web"]`, got.form["tags"])
	assert.Equal(t, "published", got.form["status"])
	assert.Equal(t, "c1", got.form["category"])
	assert.Empty(t, got.file)
}

func TestCreateTestimonial_SkipsEmptyOptionalFields(t *testing.T) {
	var got capture
	srv := captureServer(t, &got, map[string]string{"_id": "t1"})
	defer srv.Close()

	c, _, _ := newTestClient(t, srv.URL, "a1", "r1")
	_, err := c.CreateTestimonial(context.Background(), models.Testimonial{ClientName: "Bob", Message: "Great"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"clientName": "Bob", "message": "Great"}, got.form)
}

func TestFilterInquiries_Query(t *testing.T) {
	var got capture
	srv := captureServer(t, &got, []map[string]any{{"_id": "i1", "handled": true}})
	defer srv.Close()

	c, _, _ := newTestClient(t, srv.URL, "a1", "r1")
	handled := true
	list, err := c.FilterInquiries(context.Background(), &handled)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Handled)
	assert.Equal(t, "/api/inquiries/filter", got.path)
	assert.Equal(t, "handled=true", got.query)

	_, err = c.FilterInquiries(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got.query)
}

func TestEndpointPaths(t *testing.T) {
	var got capture
	srv := captureServer(t, &got, nil)
	defer srv.Close()

	c, _, _ := newTestClient(t, srv.URL, "a1", "r1")
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"blog by slug", func() error { _, err := c.GetBlogPostBySlug(ctx, "hello"); return err }, "GET", "/api/blog/slug/hello"},
		{"blog by id", func() error { _, err := c.GetBlogPost(ctx, "b1"); return err }, "GET", "/api/blog/id/b1"},
		{"blog by status", func() error { _, err := c.ListBlogPostsByStatus(ctx, models.BlogStatusDraft); return err }, "GET", "/api/blog/status/draft"},
		{"blog by category", func() error { _, err := c.ListBlogPostsByCategory(ctx, "c1"); return err }, "GET", "/api/blog/category/c1"},
		{"handle inquiry", func() error { _, err := c.MarkInquiryHandled(ctx, "i1"); return err }, "PUT", "/api/inquiries/i1/handle"},
		{"delete inquiry", func() error { return c.DeleteInquiry(ctx, "i1") }, "DELETE", "/api/inquiries/i1"},
		{"delete testimonial", func() error { return c.DeleteTestimonial(ctx, "t1") }, "DELETE", "/api/testimonials/t1"},
		{"list clients", func() error { _, err := c.ListClients(ctx); return err }, "GET", "/api/clients"},
		{"delete client", func() error { return c.DeleteClient(ctx, "x") }, "DELETE", "/api/clients/x"},
		{"get category", func() error { _, err := c.GetCategory(ctx, "c1"); return err }, "GET", "/api/categories/c1"},
		{"logout", func() error { return c.Logout(ctx) }, "POST", "/api/auth/logout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.method, got.method)
			assert.Equal(t, tt.path, got.path)
		})
	}
}

func TestCreateCategory_SendsJSON(t *testing.T) {
	var got capture
	srv := captureServer(t, &got, map[string]string{"_id": "c9", "name": "News"})
	defer srv.Close()

	c, _, _ := newTestClient(t, srv.URL, "a1", "r1")
	cat, err := c.CreateCategory(context.Background(), models.Category{Name: "News", Slug: "news"})
	require.NoError(t, err)
	assert.Equal(t, "c9", cat.ID)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(got.body, &sent))
	assert.Equal(t, "News", sent["name"])
}
