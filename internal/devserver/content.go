package devserver

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/validate"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadSize = 8 << 20

// form is a parsed multipart request. set copies a field into dst only when
// the client sent it, so updates leave omitted fields alone.
type form struct {
	*multipart.Form
}

func parseForm(r *http.Request) (form, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return form{}, err
	}
	return form{r.MultipartForm}, nil
}

func (f form) set(dst *string, key string) {
	if v, present := f.Value[key]; present && len(v) > 0 {
		*dst = v[0]
	}
}

// saveFile stores the "file" part, if any, and returns its public path.
func (s *Server) saveFile(f form) (string, error) {
	headers := f.File["file"]
	if len(headers) == 0 {
		return "", nil
	}
	src, err := headers[0].Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(headers[0].Filename))
	s.content.putUpload(name, data)
	return "/uploads/" + name, nil
}

func (s *Server) getUpload(w http.ResponseWriter, r *http.Request) {
	data, found := s.content.upload(mux.Vars(r)["name"])
	if !found {
		notFound(w, "file")
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}

// invalid reports validation failures as 422 with the field messages.
func invalid(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	fail(w, http.StatusUnprocessableEntity, err.Error())
	return true
}

// ---------- services ----------

func (s *Server) listServices(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.content.services.list(nil))
}

func (s *Server) getService(w http.ResponseWriter, r *http.Request) {
	v, found := s.content.services.get(mux.Vars(r)["id"])
	if !found {
		notFound(w, "Service")
		return
	}
	ok(w, v)
}

func (s *Server) slugTaken(slug, exceptID string) bool {
	return len(s.content.services.list(func(v models.Service) bool {
		return v.Slug == slug && v.ID != exceptID
	})) > 0
}

func (s *Server) applyServiceForm(f form, v *models.Service) error {
	f.set(&v.Title, "title")
	f.set(&v.Slug, "slug")
	f.set(&v.ShortDesc, "shortDesc")
	f.set(&v.FullDesc, "fullDesc")
	if v.Slug == "" {
		v.Slug = validate.Slugify(v.Title)
	}
	if err := validate.Service(*v); err != nil {
		return err
	}
	img, err := s.saveFile(f)
	if err != nil {
		return err
	}
	if img != "" {
		v.Images = []string{img}
	}
	v.UpdatedAt = s.now()
	return nil
}

func (s *Server) createService(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	var v models.Service
	if invalid(w, s.applyServiceForm(f, &v)) {
		return
	}
	if s.slugTaken(v.Slug, "") {
		fail(w, http.StatusConflict, "Slug already exists")
		return
	}
	created(w, "Service created", s.content.services.insert(v, s.now()))
}

func (s *Server) updateService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	f, err := parseForm(r)
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	v, found := s.content.services.get(id)
	if !found {
		notFound(w, "Service")
		return
	}
	if invalid(w, s.applyServiceForm(f, &v)) {
		return
	}
	if s.slugTaken(v.Slug, id) {
		fail(w, http.StatusConflict, "Slug already exists")
		return
	}
	v, found, _ = s.content.services.update(id, func(cur *models.Service) error {
		*cur = v
		return nil
	})
	if !found {
		notFound(w, "Service")
		return
	}
	ok(w, v)
}

func (s *Server) deleteService(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "Service", s.content.services.delete)
}

func (s *Server) deleteFrom(w http.ResponseWriter, r *http.Request, what string, del func(string) bool) {
	if !del(mux.Vars(r)["id"]) {
		notFound(w, what)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: what + " deleted"})
}

// ---------- blog ----------

// withCategory replaces a bare category id with the stored category.
func (s *Server) withCategory(p models.BlogPost) models.BlogPost {
	if p.Category == nil {
		return p
	}
	if c, found := s.content.categories.get(p.Category.ID); found {
		p.Category = &c
	}
	return p
}

func (s *Server) posts(keep func(models.BlogPost) bool) []models.BlogPost {
	list := s.content.blog.list(keep)
	for i := range list {
		list[i] = s.withCategory(list[i])
	}
	return list
}

func (s *Server) listBlog(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.posts(nil))
}

func (s *Server) getBlogPost(w http.ResponseWriter, r *http.Request) {
	p, found := s.content.blog.get(mux.Vars(r)["id"])
	if !found {
		notFound(w, "Blog post")
		return
	}
	ok(w, s.withCategory(p))
}

func (s *Server) getBlogPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	list := s.posts(func(p models.BlogPost) bool { return p.Slug == slug })
	if len(list) == 0 {
		notFound(w, "Blog post")
		return
	}
	ok(w, list[0])
}

func (s *Server) listBlogByStatus(w http.ResponseWriter, r *http.Request) {
	status := models.BlogStatus(mux.Vars(r)["status"])
	if status != models.BlogStatusDraft && status != models.BlogStatusPublished {
		badRequest(w, "Status must be draft or published.")
		return
	}
	ok(w, s.posts(func(p models.BlogPost) bool { return p.Status == status }))
}

// listBlogByCategory accepts a category id or slug.
func (s *Server) listBlogByCategory(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["category"]
	ok(w, s.posts(func(p models.BlogPost) bool {
		if p.Category == nil {
			return false
		}
		if p.Category.ID == key {
			return true
		}
		c, found := s.content.categories.get(p.Category.ID)
		return found && c.Slug == key
	}))
}

func parseTags(raw string) []string {
	var tags []string
	if json.Unmarshal([]byte(raw), &tags) == nil {
		return tags
	}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (s *Server) applyBlogForm(f form, p *models.BlogPost) error {
	f.set(&p.Title, "title")
	f.set(&p.Content, "content")
	f.set(&p.Slug, "slug")
	if p.Slug == "" {
		p.Slug = validate.Slugify(p.Title)
	}
	var raw string
	f.set(&raw, "tags")
	if raw != "" {
		p.Tags = parseTags(raw)
	}
	status := string(p.Status)
	f.set(&status, "status")
	p.Status = models.BlogStatus(status)
	if p.Status == "" {
		p.Status = models.BlogStatusPublished
	}

	var catID string
	f.set(&catID, "category")
	if catID != "" {
		if _, found := s.content.categories.get(catID); !found {
			return validate.FieldErrors{"category": "Unknown category."}
		}
		p.Category = &models.Category{ID: catID}
	}
	if err := validate.BlogPost(*p); err != nil {
		return err
	}

	thumb, err := s.saveFile(f)
	if err != nil {
		return err
	}
	if thumb != "" {
		p.Thumbnail = thumb
	}
	p.UpdatedAt = s.now()
	return nil
}

// stored strips the populated category back to its id.
func stored(p models.BlogPost) models.BlogPost {
	if p.Category != nil {
		p.Category = &models.Category{ID: p.Category.ID}
	}
	return p
}

func (s *Server) createBlogPost(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	var p models.BlogPost
	if invalid(w, s.applyBlogForm(f, &p)) {
		return
	}
	p = s.content.blog.insert(stored(p), s.now())
	created(w, "Blog post created", s.withCategory(p))
}

func (s *Server) updateBlogPost(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	p, found, err := s.content.blog.update(mux.Vars(r)["id"], func(p *models.BlogPost) error {
		if err := s.applyBlogForm(f, p); err != nil {
			return err
		}
		*p = stored(*p)
		return nil
	})
	switch {
	case !found:
		notFound(w, "Blog post")
	case invalid(w, err):
	default:
		ok(w, s.withCategory(p))
	}
}

func (s *Server) deleteBlogPost(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "Blog post", s.content.blog.delete)
}

// ---------- categories ----------

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.content.categories.list(nil))
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	c, found := s.content.categories.get(mux.Vars(r)["id"])
	if !found {
		notFound(w, "Category")
		return
	}
	ok(w, c)
}

func checkCategory(c *models.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return validate.FieldErrors{"name": "Name is required."}
	}
	if c.Slug == "" {
		c.Slug = validate.Slugify(c.Name)
	}
	return nil
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := decodeJSON(r, &c); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if invalid(w, checkCategory(&c)) {
		return
	}
	created(w, "Category created", s.content.categories.insert(c, s.now()))
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.Category
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	c, found, err := s.content.categories.update(mux.Vars(r)["id"], func(c *models.Category) error {
		in.ID = c.ID
		if err := checkCategory(&in); err != nil {
			return err
		}
		*c = in
		return nil
	})
	switch {
	case !found:
		notFound(w, "Category")
	case invalid(w, err):
	default:
		ok(w, c)
	}
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "Category", s.content.categories.delete)
}

// ---------- clients ----------

func (s *Server) listClients(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.content.clients.list(nil))
}

func checkClient(c models.ClientLogo) error {
	if strings.TrimSpace(c.Name) == "" {
		return validate.FieldErrors{"name": "Name is required."}
	}
	return nil
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var c models.ClientLogo
	if err := decodeJSON(r, &c); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if invalid(w, checkClient(c)) {
		return
	}
	created(w, "Client created", s.content.clients.insert(c, s.now()))
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	var in models.ClientLogo
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	c, found, err := s.content.clients.update(mux.Vars(r)["id"], func(c *models.ClientLogo) error {
		in.ID = c.ID
		if err := checkClient(in); err != nil {
			return err
		}
		*c = in
		return nil
	})
	switch {
	case !found:
		notFound(w, "Client")
	case invalid(w, err):
	default:
		ok(w, c)
	}
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "Client", s.content.clients.delete)
}

// ---------- inquiries ----------

func (s *Server) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var in models.Inquiry
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	in.Handled = false
	if invalid(w, validate.Contact(in)) {
		return
	}
	created(w, "Message sent successfully", s.content.inquiries.insert(in, s.now()))
}

func (s *Server) listInquiries(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.content.inquiries.list(nil))
}

// filterInquiries lists by ?handled=true|false; without the parameter it
// returns everything.
func (s *Server) filterInquiries(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("handled")
	if raw == "" {
		ok(w, s.content.inquiries.list(nil))
		return
	}
	handled, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(w, fmt.Sprintf("handled must be true or false, got %q", raw))
		return
	}
	ok(w, s.content.inquiries.list(func(in models.Inquiry) bool { return in.Handled == handled }))
}

func (s *Server) getInquiry(w http.ResponseWriter, r *http.Request) {
	in, found := s.content.inquiries.get(mux.Vars(r)["id"])
	if !found {
		notFound(w, "Inquiry")
		return
	}
	ok(w, in)
}

func (s *Server) markInquiryHandled(w http.ResponseWriter, r *http.Request) {
	in, found, _ := s.content.inquiries.update(mux.Vars(r)["id"], func(in *models.Inquiry) error {
		in.Handled = true
		return nil
	})
	if !found {
		notFound(w, "Inquiry")
		return
	}
	ok(w, in)
}

func (s *Server) deleteInquiry(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "Inquiry", s.content.inquiries.delete)
}

// ---------- testimonials ----------

func (s *Server) listTestimonials(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.content.testimonials.list(nil))
}

func (s *Server) applyTestimonialForm(f form, t *models.Testimonial) error {
	f.set(&t.ClientName, "clientName")
	f.set(&t.Message, "message")
	f.set(&t.Company, "company")
	f.set(&t.Designation, "designation")
	if err := validate.Testimonial(*t); err != nil {
		return err
	}
	avatar, err := s.saveFile(f)
	if err != nil {
		return err
	}
	if avatar != "" {
		t.Avatar = avatar
	}
	return nil
}

func (s *Server) createTestimonial(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	var t models.Testimonial
	if invalid(w, s.applyTestimonialForm(f, &t)) {
		return
	}
	created(w, "Testimonial created", s.content.testimonials.insert(t, s.now()))
}

func (s *Server) updateTestimonial(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		badRequest(w, "Invalid form data")
		return
	}
	t, found, err := s.content.testimonials.update(mux.Vars(r)["id"], func(t *models.Testimonial) error {
		return s.applyTestimonialForm(f, t)
	})
	switch {
	case !found:
		notFound(w, "Testimonial")
	case invalid(w, err):
	default:
		ok(w, t)
	}
}

func (s *Server) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	s.deleteFrom(w, r, "Testimonial", s.content.testimonials.delete)
}
