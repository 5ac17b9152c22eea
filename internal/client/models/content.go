// Package models defines the content types exchanged with the site backend.
// JSON field names follow the backend's documents (Mongo-style "_id").
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type Service struct {
	ID        string    `json:"_id,omitempty"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	ShortDesc string    `json:"shortDesc"`
	FullDesc  string    `json:"fullDesc,omitempty"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

type BlogPost struct {
	ID        string     `json:"_id,omitempty"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags,omitempty"`
	Status    BlogStatus `json:"status,omitempty"`
	Category  *Category  `json:"category,omitempty"`
	Thumbnail string     `json:"thumbnail,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitzero"`
	UpdatedAt time.Time  `json:"updatedAt,omitzero"`
}

// Category is returned either populated ({"_id":..,"name":..}) or as a
// bare id string, depending on the endpoint.
type Category struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

func (c *Category) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte(`"`)) {
		return json.Unmarshal(b, &c.ID)
	}
	type plain Category
	return json.Unmarshal(b, (*plain)(c))
}

type Testimonial struct {
	ID          string    `json:"_id,omitempty"`
	ClientName  string    `json:"clientName"`
	Company     string    `json:"company,omitempty"`
	Designation string    `json:"designation,omitempty"`
	Message     string    `json:"message"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

type Inquiry struct {
	ID        string    `json:"_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Handled   bool      `json:"handled"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// ClientLogo is a customer shown on the public site.
type ClientLogo struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Website string `json:"website,omitempty"`
}
