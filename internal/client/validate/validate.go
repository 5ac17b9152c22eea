// Package validate holds the form rules the site applies before anything
// is sent to the backend.
package validate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
)

const MinMessageLength = 10

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	spaces       = regexp.MustCompile(`\s+`)
)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Slugify lowercases title and replaces whitespace runs with "-".
func Slugify(title string) string {
	return spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}

func Contact(in models.Inquiry) error {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Name is required."
	}
	email(errs, in.Email)
	msg := strings.TrimSpace(in.Message)
	switch {
	case msg == "":
		errs["message"] = "Message cannot be empty."
	case len([]rune(msg)) < MinMessageLength:
		errs["message"] = "Message must be at least 10 characters."
	}
	return errs.orNil()
}

func SignIn(c models.Credentials) error {
	errs := FieldErrors{}
	email(errs, c.Email)
	if strings.TrimSpace(c.Password) == "" {
		errs["password"] = "Password is required."
	}
	return errs.orNil()
}

func Service(s models.Service) error {
	errs := FieldErrors{}
	required(errs, "title", s.Title)
	required(errs, "slug", s.Slug)
	required(errs, "shortDesc", s.ShortDesc)
	return errs.orNil()
}

func BlogPost(p models.BlogPost) error {
	errs := FieldErrors{}
	required(errs, "title", p.Title)
	required(errs, "content", p.Content)
	switch p.Status {
	case "", models.BlogStatusDraft, models.BlogStatusPublished:
	default:
		errs["status"] = "Status must be draft or published."
	}
	return errs.orNil()
}

func Testimonial(t models.Testimonial) error {
	errs := FieldErrors{}
	required(errs, "clientName", t.ClientName)
	required(errs, "message", t.Message)
	return errs.orNil()
}

func email(errs FieldErrors, v string) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		errs["email"] = "Email is required."
	case !emailPattern.MatchString(v):
		errs["email"] = "Invalid email address."
	}
}

func required(errs FieldErrors, field, v string) {
	if strings.TrimSpace(v) == "" {
		errs[field] = "This field is required."
	}
}
