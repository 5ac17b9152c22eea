package devserver

import "github.com/dmitrijs2005/siteadmin/internal/client/models"

// seed loads a small demo data set so a fresh devserver has something to
// list.
func (s *Server) seed() {
	now := s.now()
	c := s.content

	news := c.categories.insert(models.Category{Name: "News", Slug: "news"}, now)

	c.services.insert(models.Service{
		Title:     "Web Development",
		Slug:      "web-development",
		ShortDesc: "Fast, accessible websites.",
		FullDesc:  "From landing pages to full web applications.",
	}, now)
	c.services.insert(models.Service{
		Title:     "Cloud Migration",
		Slug:      "cloud-migration",
		ShortDesc: "Move workloads without downtime.",
	}, now)

	c.blog.insert(models.BlogPost{
		Title:    "Hello World",
		Slug:     "hello-world",
		Content:  "Our new site is live.",
		Tags:     []string{"announcement"},
		Status:   models.BlogStatusPublished,
		Category: &models.Category{ID: news.ID},
	}, now)
	c.blog.insert(models.BlogPost{
		Title:   "Roadmap",
		Slug:    "roadmap",
		Content: "What we are working on next.",
		Status:  models.BlogStatusDraft,
	}, now)

	c.testimonials.insert(models.Testimonial{
		ClientName:  "Jane Doe",
		Company:     "Acme",
		Designation: "CTO",
		Message:     "They delivered on time and on budget.",
	}, now)

	c.clients.insert(models.ClientLogo{Name: "Acme", Website: "https://acme.example"}, now)

	c.inquiries.insert(models.Inquiry{
		Name:    "John Smith",
		Email:   "john@example.com",
		Message: "Could you send me a quote for a new website?",
	}, now)
}
