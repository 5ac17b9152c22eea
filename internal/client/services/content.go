package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
	"github.com/dmitrijs2005/siteadmin/internal/client/validate"
	"golang.org/x/sync/errgroup"
)

// ContentClient is the part of the API client the content service needs.
type ContentClient interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (models.Service, error)
	CreateService(ctx context.Context, s models.Service, file *transport.File) (models.Service, error)
	UpdateService(ctx context.Context, id string, s models.Service, file *transport.File) (models.Service, error)
	DeleteService(ctx context.Context, id string) error

	ListBlogPosts(ctx context.Context) ([]models.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (models.BlogPost, error)
	CreateBlogPost(ctx context.Context, p models.BlogPost, file *transport.File) (models.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, p models.BlogPost, file *transport.File) (models.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error

	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t models.Testimonial, file *transport.File) (models.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id string, t models.Testimonial, file *transport.File) (models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error

	SubmitInquiry(ctx context.Context, in models.Inquiry) (models.Inquiry, error)
	FilterInquiries(ctx context.Context, handled *bool) ([]models.Inquiry, error)
	GetInquiry(ctx context.Context, id string) (models.Inquiry, error)
	MarkInquiryHandled(ctx context.Context, id string) (models.Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
}

type HandledFilter string

const (
	FilterAll        HandledFilter = "all"
	FilterHandled    HandledFilter = "handled"
	FilterNotHandled HandledFilter = "not-handled"
)

type SortOrder string

const (
	Newest SortOrder = "newest"
	Oldest SortOrder = "oldest"
)

type InquiryQuery struct {
	Handled HandledFilter
	Order   SortOrder
}

// Dashboard is the admin panel overview.
type Dashboard struct {
	Services     []models.Service
	BlogPosts    []models.BlogPost
	Testimonials []models.Testimonial
	Inquiries    []models.Inquiry
}

// OpenInquiries counts inquiries not yet handled.
func (d Dashboard) OpenInquiries() int {
	n := 0
	for _, in := range d.Inquiries {
		if !in.Handled {
			n++
		}
	}
	return n
}

// ContentService manages the site's content on behalf of the admin.
//
// Save* creates when id is empty and updates otherwise; input is validated
// before any request is made. file is an optional image upload.
type ContentService interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (models.Service, error)
	SaveService(ctx context.Context, id string, s models.Service, file *transport.File) (models.Service, error)
	DeleteService(ctx context.Context, id string) error

	ListBlogPosts(ctx context.Context) ([]models.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (models.BlogPost, error)
	SaveBlogPost(ctx context.Context, id string, p models.BlogPost, file *transport.File) (models.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error

	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	SaveTestimonial(ctx context.Context, id string, t models.Testimonial, file *transport.File) (models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error

	Inquiries(ctx context.Context, q InquiryQuery) ([]models.Inquiry, error)
	GetInquiry(ctx context.Context, id string) (models.Inquiry, error)
	MarkInquiryHandled(ctx context.Context, id string) (models.Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
	SubmitContact(ctx context.Context, in models.Inquiry) error

	Dashboard(ctx context.Context) (Dashboard, error)
}

type contentService struct {
	client ContentClient
}

func NewContentService(client ContentClient) ContentService {
	return &contentService{client: client}
}

func (s *contentService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.client.ListServices(ctx)
}

func (s *contentService) GetService(ctx context.Context, id string) (models.Service, error) {
	return s.client.GetService(ctx, id)
}

// SaveService fills in the slug from the title when it is left empty.
func (s *contentService) SaveService(ctx context.Context, id string, svc models.Service, file *transport.File) (models.Service, error) {
	if svc.Slug == "" {
		svc.Slug = validate.Slugify(svc.Title)
	}
	if err := validate.Service(svc); err != nil {
		return models.Service{}, err
	}
	if id == "" {
		return s.client.CreateService(ctx, svc, file)
	}
	return s.client.UpdateService(ctx, id, svc, file)
}

func (s *contentService) DeleteService(ctx context.Context, id string) error {
	return s.client.DeleteService(ctx, id)
}

func (s *contentService) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	return s.client.ListBlogPosts(ctx)
}

func (s *contentService) GetBlogPost(ctx context.Context, id string) (models.BlogPost, error) {
	return s.client.GetBlogPost(ctx, id)
}

// SaveBlogPost always derives the slug from the title. Posts without a
// status are published.
func (s *contentService) SaveBlogPost(ctx context.Context, id string, p models.BlogPost, file *transport.File) (models.BlogPost, error) {
	if err := validate.BlogPost(p); err != nil {
		return models.BlogPost{}, err
	}
	p.Slug = validate.Slugify(p.Title)
	if p.Status == "" {
		p.Status = models.BlogStatusPublished
	}
	if id == "" {
		return s.client.CreateBlogPost(ctx, p, file)
	}
	return s.client.UpdateBlogPost(ctx, id, p, file)
}

func (s *contentService) DeleteBlogPost(ctx context.Context, id string) error {
	return s.client.DeleteBlogPost(ctx, id)
}

func (s *contentService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.client.ListTestimonials(ctx)
}

func (s *contentService) SaveTestimonial(ctx context.Context, id string, t models.Testimonial, file *transport.File) (models.Testimonial, error) {
	if err := validate.Testimonial(t); err != nil {
		return models.Testimonial{}, err
	}
	if id == "" {
		return s.client.CreateTestimonial(ctx, t, file)
	}
	return s.client.UpdateTestimonial(ctx, id, t, file)
}

func (s *contentService) DeleteTestimonial(ctx context.Context, id string) error {
	return s.client.DeleteTestimonial(ctx, id)
}

// Inquiries filters on the server and orders locally by creation time.
func (s *contentService) Inquiries(ctx context.Context, q InquiryQuery) ([]models.Inquiry, error) {
	var handled *bool
	switch q.Handled {
	case FilterHandled:
		v := true
		handled = &v
	case FilterNotHandled:
		v := false
		handled = &v
	case FilterAll, "":
	default:
		return nil, fmt.Errorf("unknown inquiry filter %q", q.Handled)
	}

	list, err := s.client.FilterInquiries(ctx, handled)
	if err != nil {
		return nil, err
	}
	sortInquiries(list, q.Order)
	return list, nil
}

func sortInquiries(list []models.Inquiry, order SortOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		if order == Oldest {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

func (s *contentService) GetInquiry(ctx context.Context, id string) (models.Inquiry, error) {
	return s.client.GetInquiry(ctx, id)
}

func (s *contentService) MarkInquiryHandled(ctx context.Context, id string) (models.Inquiry, error) {
	return s.client.MarkInquiryHandled(ctx, id)
}

func (s *contentService) DeleteInquiry(ctx context.Context, id string) error {
	return s.client.DeleteInquiry(ctx, id)
}

func (s *contentService) SubmitContact(ctx context.Context, in models.Inquiry) error {
	if err := validate.Contact(in); err != nil {
		return err
	}
	_, err := s.client.SubmitInquiry(ctx, in)
	return err
}

// Dashboard loads every collection concurrently. The first failure cancels
// the rest.
func (s *contentService) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Services, err = s.client.ListServices(ctx)
		return wrap("services", err)
	})
	g.Go(func() (err error) {
		d.BlogPosts, err = s.client.ListBlogPosts(ctx)
		return wrap("blog", err)
	})
	g.Go(func() (err error) {
		d.Testimonials, err = s.client.ListTestimonials(ctx)
		return wrap("testimonials", err)
	})
	g.Go(func() (err error) {
		d.Inquiries, err = s.client.FilterInquiries(ctx, nil)
		if err == nil {
			sortInquiries(d.Inquiries, Newest)
		}
		return wrap("inquiries", err)
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}
