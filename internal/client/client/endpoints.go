package client

import "net/url"

// Backend paths, relative to the configured base URL.
const (
	pathAuthRegister = "auth/register"
	pathAuthLogin    = "auth/login"
	pathAuthGoogle   = "auth/google"
	pathAuthRefresh  = "auth/refresh"
	pathAuthLogout   = "auth/logout"

	pathBlog         = "blog"
	pathCategories   = "categories"
	pathClients      = "clients"
	pathInquiries    = "inquiries"
	pathInquiriesFlt = "inquiries/filter"
	pathServices     = "services"
	pathTestimonials = "testimonials"
)

func item(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

func blogByID(id string) string         { return "blog/id/" + url.PathEscape(id) }
func blogBySlug(slug string) string     { return "blog/slug/" + url.PathEscape(slug) }
func blogByStatus(status string) string { return "blog/status/" + url.PathEscape(status) }
func blogByCategory(cat string) string  { return "blog/category/" + url.PathEscape(cat) }
func inquiryHandle(id string) string    { return item(pathInquiries, id) + "/handle" }
