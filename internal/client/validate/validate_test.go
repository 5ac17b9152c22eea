package validate

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fe FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
	return fe
}

func TestContact(t *testing.T) {
	tests := []struct {
		name   string
		in     models.Inquiry
		fields []string
	}{
		{name: "valid", in: models.Inquiry{Name: "Ann", Email: "ann@example.com", Message: "Need a website"}},
		{name: "all empty", in: models.Inquiry{Message: "   "}, fields: []string{"name", "email", "message"}},
		{name: "bad email", in: models.Inquiry{Name: "Ann", Email: "ann@example", Message: "Need a website"}, fields: []string{"email"}},
		{name: "short message", in: models.Inquiry{Name: "Ann", Email: "a@b.co", Message: " hi there "}, fields: []string{"message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Contact(tt.in)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}
			fe := fieldErrors(t, err)
			assert.Len(t, fe, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, fe, f)
			}
		})
	}
}

func TestContact_Messages(t *testing.T) {
	fe := fieldErrors(t, Contact(models.Inquiry{Name: "A", Email: "x", Message: "short"}))
	assert.Equal(t, "Invalid email address.", fe["email"])
	assert.Equal(t, "Message must be at least 10 characters.", fe["message"])
}

func TestSignIn(t *testing.T) {
	require.NoError(t, SignIn(models.Credentials{Email: "admin@site.io", Password: "pw"}))

	fe := fieldErrors(t, SignIn(models.Credentials{}))
	assert.Equal(t, "Email is required.", fe["email"])
	assert.Equal(t, "Password is required.", fe["password"])
}

func TestServiceBlogTestimonial(t *testing.T) {
	require.NoError(t, Service(models.Service{Title: "SEO", Slug: "seo", ShortDesc: "Rank"}))
	assert.Len(t, fieldErrors(t, Service(models.Service{Title: "SEO"})), 2)

	require.NoError(t, BlogPost(models.BlogPost{Title: "Hello", Content: "# Hi"}))
	assert.Contains(t, fieldErrors(t, BlogPost(models.BlogPost{Title: "Hello"})), "content")
	assert.Contains(t, fieldErrors(t, BlogPost(models.BlogPost{Title: "Hello", Content: "x", Status: "archived"})), "status")

	require.NoError(t, Testimonial(models.Testimonial{ClientName: "Bob", Message: "Great"}))
	assert.Contains(t, fieldErrors(t, Testimonial(models.Testimonial{Message: "Great"})), "clientName")
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	err := FieldErrors{"slug": "required", "title": "required"}
	assert.EqualError(t, err, "invalid input: slug: required; title: required")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "web-design", Slugify("Web Design"))
	assert.Equal(t, "a-b-c", Slugify("  A   b\tC "))
	assert.Equal(t, "", Slugify(""))
}
