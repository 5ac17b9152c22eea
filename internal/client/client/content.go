package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
)

// Services

func (c *APIClient) ListServices(ctx context.Context) ([]models.Service, error) {
	return get[[]models.Service](ctx, c, pathServices, nil)
}

func (c *APIClient) GetService(ctx context.Context, id string) (models.Service, error) {
	return get[models.Service](ctx, c, item(pathServices, id), nil)
}

// CreateService sends s as a multipart form. file is optional.
func (c *APIClient) CreateService(ctx context.Context, s models.Service, file *transport.File) (models.Service, error) {
	return sendForm[models.Service](ctx, c, http.MethodPost, pathServices, serviceForm(s, file))
}

func (c *APIClient) UpdateService(ctx context.Context, id string, s models.Service, file *transport.File) (models.Service, error) {
	return sendForm[models.Service](ctx, c, http.MethodPut, item(pathServices, id), serviceForm(s, file))
}

func (c *APIClient) DeleteService(ctx context.Context, id string) error {
	return remove(ctx, c, item(pathServices, id))
}

func serviceForm(s models.Service, file *transport.File) *transport.Form {
	f := &transport.Form{File: file}
	f.Add("title", s.Title).
		Add("slug", s.Slug).
		Add("shortDesc", s.ShortDesc).
		Add("fullDesc", s.FullDesc)
	return f
}

// Blog

func (c *APIClient) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	return get[[]models.BlogPost](ctx, c, pathBlog, nil)
}

func (c *APIClient) GetBlogPost(ctx context.Context, id string) (models.BlogPost, error) {
	return get[models.BlogPost](ctx, c, blogByID(id), nil)
}

func (c *APIClient) GetBlogPostBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	return get[models.BlogPost](ctx, c, blogBySlug(slug), nil)
}

func (c *APIClient) ListBlogPostsByStatus(ctx context.Context, status models.BlogStatus) ([]models.BlogPost, error) {
	return get[[]models.BlogPost](ctx, c, blogByStatus(string(status)), nil)
}

func (c *APIClient) ListBlogPostsByCategory(ctx context.Context, categoryID string) ([]models.BlogPost, error) {
	return get[[]models.BlogPost](ctx, c, blogByCategory(categoryID), nil)
}

func (c *APIClient) CreateBlogPost(ctx context.Context, p models.BlogPost, file *transport.File) (models.BlogPost, error) {
	form, err := blogForm(p, file)
	if err != nil {
		return models.BlogPost{}, err
	}
	return sendForm[models.BlogPost](ctx, c, http.MethodPost, pathBlog, form)
}

func (c *APIClient) UpdateBlogPost(ctx context.Context, id string, p models.BlogPost, file *transport.File) (models.BlogPost, error) {
	form, err := blogForm(p, file)
	if err != nil {
		return models.BlogPost{}, err
	}
	return sendForm[models.BlogPost](ctx, c, http.MethodPut, item(pathBlog, id), form)
}

func (c *APIClient) DeleteBlogPost(ctx context.Context, id string) error {
	return remove(ctx, c, item(pathBlog, id))
}

// blogForm encodes tags as a JSON array in a single field, which is what
// the backend parses.
func blogForm(p models.BlogPost, file *transport.File) (*transport.Form, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}

	f := &transport.Form{File: file}
	f.Add("title", p.Title).
		Add("slug", p.Slug).
		Add("content", p.Content).
		Add("tags", string(encoded)).
		Add("status", string(p.Status))
	if p.Category != nil {
		f.Add("category", p.Category.ID)
	}
	return f, nil
}

// Categories

func (c *APIClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	return get[[]models.Category](ctx, c, pathCategories, nil)
}

func (c *APIClient) GetCategory(ctx context.Context, id string) (models.Category, error) {
	return get[models.Category](ctx, c, item(pathCategories, id), nil)
}

func (c *APIClient) CreateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	return sendJSON[models.Category](ctx, c, http.MethodPost, pathCategories, cat)
}

func (c *APIClient) UpdateCategory(ctx context.Context, id string, cat models.Category) (models.Category, error) {
	return sendJSON[models.Category](ctx, c, http.MethodPut, item(pathCategories, id), cat)
}

func (c *APIClient) DeleteCategory(ctx context.Context, id string) error {
	return remove(ctx, c, item(pathCategories, id))
}

// Clients

func (c *APIClient) ListClients(ctx context.Context) ([]models.ClientLogo, error) {
	return get[[]models.ClientLogo](ctx, c, pathClients, nil)
}

func (c *APIClient) CreateClient(ctx context.Context, cl models.ClientLogo) (models.ClientLogo, error) {
	return sendJSON[models.ClientLogo](ctx, c, http.MethodPost, pathClients, cl)
}

func (c *APIClient) UpdateClient(ctx context.Context, id string, cl models.ClientLogo) (models.ClientLogo, error) {
	return sendJSON[models.ClientLogo](ctx, c, http.MethodPut, item(pathClients, id), cl)
}

func (c *APIClient) DeleteClient(ctx context.Context, id string) error {
	return remove(ctx, c, item(pathClients, id))
}

// Inquiries

// SubmitInquiry posts the public contact form.
func (c *APIClient) SubmitInquiry(ctx context.Context, in models.Inquiry) (models.Inquiry, error) {
	return sendJSON[models.Inquiry](ctx, c, http.MethodPost, pathInquiries, in)
}

func (c *APIClient) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return get[[]models.Inquiry](ctx, c, pathInquiries, nil)
}

// FilterInquiries lists inquiries by handled state. A nil handled applies
// no filter.
func (c *APIClient) FilterInquiries(ctx context.Context, handled *bool) ([]models.Inquiry, error) {
	q := url.Values{}
	if handled != nil {
		q.Set("handled", strconv.FormatBool(*handled))
	}
	return get[[]models.Inquiry](ctx, c, pathInquiriesFlt, q)
}

func (c *APIClient) GetInquiry(ctx context.Context, id string) (models.Inquiry, error) {
	return get[models.Inquiry](ctx, c, item(pathInquiries, id), nil)
}

func (c *APIClient) MarkInquiryHandled(ctx context.Context, id string) (models.Inquiry, error) {
	return sendJSON[models.Inquiry](ctx, c, http.MethodPut, inquiryHandle(id), nil)
}

func (c *APIClient) DeleteInquiry(ctx context.Context, id string) error {
	return remove(ctx, c, item(pathInquiries, id))
}

// Testimonials

func (c *APIClient) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return get[[]models.Testimonial](ctx, c, pathTestimonials, nil)
}

func (c *APIClient) CreateTestimonial(ctx context.Context, t models.Testimonial, file *transport.File) (models.Testimonial, error) {
	return sendForm[models.Testimonial](ctx, c, http.MethodPost, pathTestimonials, testimonialForm(t, file))
}

func (c *APIClient) UpdateTestimonial(ctx context.Context, id string, t models.Testimonial, file *transport.File) (models.Testimonial, error) {
	return sendForm[models.Testimonial](ctx, c, http.MethodPut, item(pathTestimonials, id), testimonialForm(t, file))
}

func (c *APIClient) DeleteTestimonial(ctx context.Context, id string) error {
	return remove(ctx, c, item(pathTestimonials, id))
}

func testimonialForm(t models.Testimonial, file *transport.File) *transport.Form {
	f := &transport.Form{File: file}
	f.Add("clientName", t.ClientName).
		Add("message", t.Message).
		Add("company", t.Company).
		Add("designation", t.Designation)
	return f
}
