package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/siteadmin/internal/client/client"
	"github.com/dmitrijs2005/siteadmin/internal/client/models"
)

// subcommand splits args into the action (default "list") and its
// remaining arguments.
func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	return args[0], args[1:]
}

func requireID(what string, args []string) (string, error) {
	if len(args) == 0 {
		return "", usage("%s needs an id", what)
	}
	return args[0], nil
}

func (a *App) Services(ctx context.Context, args []string) error {
	action, rest := subcommand(args)
	switch action {
	case "list":
		list, err := a.content.ListServices(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, len(list))
		for i, s := range list {
			rows[i] = []string{s.ID, s.Title, s.Slug, excerpt(s.ShortDesc, 40)}
		}
		table(a.out, "ID\tTITLE\tSLUG\tSUMMARY", rows)
		return nil

	case "show":
		id, err := requireID("services show", rest)
		if err != nil {
			return err
		}
		s, err := a.content.GetService(ctx, id)
		if err != nil {
			return err
		}
		printService(a.out, s)
		return nil

	case "add", "edit":
		var (
			id      string
			current models.Service
			err     error
		)
		if action == "edit" {
			if id, err = requireID("services edit", rest); err != nil {
				return err
			}
			if current, err = a.content.GetService(ctx, id); err != nil {
				return err
			}
		}
		s, err := a.promptService(current)
		if err != nil {
			return err
		}
		file, err := GetImage(a.reader, "Image", a.out)
		if err != nil {
			return err
		}
		saved, err := a.content.SaveService(ctx, id, s, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Service saved: %s\n", saved.ID)
		return nil

	case "delete":
		id, err := requireID("services delete", rest)
		if err != nil {
			return err
		}
		return a.confirmDelete(ctx, "service "+id, func() error { return a.content.DeleteService(ctx, id) })
	}
	return usage("services [list|show|add|edit|delete] [id]")
}

func (a *App) promptService(cur models.Service) (models.Service, error) {
	var err error
	if cur.Title, err = GetTextWithDefault(a.reader, "Title", cur.Title, a.out); err != nil {
		return cur, err
	}
	if cur.Slug, err = GetTextWithDefault(a.reader, "Slug (empty derives it from the title)", cur.Slug, a.out); err != nil {
		return cur, err
	}
	if cur.ShortDesc, err = GetTextWithDefault(a.reader, "Short description", cur.ShortDesc, a.out); err != nil {
		return cur, err
	}
	full, err := GetMultiline(a.reader, "Full description (empty keeps the current one)", a.out)
	if err != nil {
		return cur, err
	}
	if full != "" {
		cur.FullDesc = full
	}
	return cur, nil
}

func (a *App) Blog(ctx context.Context, args []string) error {
	action, rest := subcommand(args)
	switch action {
	case "list":
		var (
			list []models.BlogPost
			err  error
		)
		list, err = a.content.ListBlogPosts(ctx)
		if err != nil {
			return err
		}
		if len(rest) > 0 {
			list = filterPosts(list, models.BlogStatus(rest[0]))
		}
		rows := make([][]string, len(list))
		for i, p := range list {
			rows[i] = []string{p.ID, p.Title, string(p.Status), date(p.CreatedAt)}
		}
		table(a.out, "ID\tTITLE\tSTATUS\tCREATED", rows)
		return nil

	case "show":
		id, err := requireID("blog show", rest)
		if err != nil {
			return err
		}
		p, err := a.content.GetBlogPost(ctx, id)
		if err != nil {
			return err
		}
		printBlogPost(a.out, p)
		return nil

	case "add", "edit":
		var (
			id      string
			current models.BlogPost
			err     error
		)
		if action == "edit" {
			if id, err = requireID("blog edit", rest); err != nil {
				return err
			}
			if current, err = a.content.GetBlogPost(ctx, id); err != nil {
				return err
			}
		}
		p, err := a.promptBlogPost(current)
		if err != nil {
			return err
		}
		file, err := GetImage(a.reader, "Thumbnail", a.out)
		if err != nil {
			return err
		}
		saved, err := a.content.SaveBlogPost(ctx, id, p, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Blog post saved: %s\n", saved.ID)
		return nil

	case "delete":
		id, err := requireID("blog delete", rest)
		if err != nil {
			return err
		}
		return a.confirmDelete(ctx, "blog post "+id, func() error { return a.content.DeleteBlogPost(ctx, id) })
	}
	return usage("blog [list [draft|published]|show|add|edit|delete] [id]")
}

func filterPosts(list []models.BlogPost, status models.BlogStatus) []models.BlogPost {
	out := list[:0:0]
	for _, p := range list {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

func (a *App) promptBlogPost(cur models.BlogPost) (models.BlogPost, error) {
	var err error
	if cur.Title, err = GetTextWithDefault(a.reader, "Title", cur.Title, a.out); err != nil {
		return cur, err
	}
	content, err := GetMultiline(a.reader, "Content (markdown, empty keeps the current one)", a.out)
	if err != nil {
		return cur, err
	}
	if content != "" {
		cur.Content = content
	}
	tags, err := GetList(a.reader, "Tags (comma separated, empty keeps the current ones)", a.out)
	if err != nil {
		return cur, err
	}
	if len(tags) > 0 {
		cur.Tags = tags
	}
	status, err := GetTextWithDefault(a.reader, "Status (draft|published)", string(cur.Status), a.out)
	if err != nil {
		return cur, err
	}
	cur.Status = models.BlogStatus(status)

	catID := ""
	if cur.Category != nil {
		catID = cur.Category.ID
	}
	if catID, err = GetTextWithDefault(a.reader, "Category id", catID, a.out); err != nil {
		return cur, err
	}
	if catID != "" {
		cur.Category = &models.Category{ID: catID}
	}
	return cur, nil
}

func (a *App) Testimonials(ctx context.Context, args []string) error {
	action, rest := subcommand(args)
	switch action {
	case "list":
		list, err := a.content.ListTestimonials(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, len(list))
		for i, t := range list {
			rows[i] = []string{t.ID, t.ClientName, t.Company, excerpt(t.Message, 40)}
		}
		table(a.out, "ID\tCLIENT\tCOMPANY\tMESSAGE", rows)
		return nil

	case "add", "edit":
		var (
			id      string
			current models.Testimonial
			err     error
		)
		if action == "edit" {
			if id, err = requireID("testimonials edit", rest); err != nil {
				return err
			}
			if current, err = a.findTestimonial(ctx, id); err != nil {
				return err
			}
		}
		t, err := a.promptTestimonial(current)
		if err != nil {
			return err
		}
		file, err := GetImage(a.reader, "Avatar", a.out)
		if err != nil {
			return err
		}
		saved, err := a.content.SaveTestimonial(ctx, id, t, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Testimonial saved: %s\n", saved.ID)
		return nil

	case "delete":
		id, err := requireID("testimonials delete", rest)
		if err != nil {
			return err
		}
		return a.confirmDelete(ctx, "testimonial "+id, func() error { return a.content.DeleteTestimonial(ctx, id) })
	}
	return usage("testimonials [list|add|edit|delete] [id]")
}

// findTestimonial looks id up in the full list; the backend has no
// single-testimonial endpoint.
func (a *App) findTestimonial(ctx context.Context, id string) (models.Testimonial, error) {
	list, err := a.content.ListTestimonials(ctx)
	if err != nil {
		return models.Testimonial{}, err
	}
	for _, t := range list {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Testimonial{}, fmt.Errorf("testimonial %s: %w", id, client.ErrNotFound)
}

func (a *App) promptTestimonial(cur models.Testimonial) (models.Testimonial, error) {
	var err error
	if cur.ClientName, err = GetTextWithDefault(a.reader, "Client name", cur.ClientName, a.out); err != nil {
		return cur, err
	}
	if cur.Company, err = GetTextWithDefault(a.reader, "Company", cur.Company, a.out); err != nil {
		return cur, err
	}
	if cur.Designation, err = GetTextWithDefault(a.reader, "Designation", cur.Designation, a.out); err != nil {
		return cur, err
	}
	if cur.Message, err = GetTextWithDefault(a.reader, "Message", cur.Message, a.out); err != nil {
		return cur, err
	}
	return cur, nil
}

func (a *App) confirmDelete(ctx context.Context, what string, del func() error) error {
	ok, err := Confirm(a.reader, "Delete "+what+"?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := del(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", what)
	return nil
}
