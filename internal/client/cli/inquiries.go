package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/services"
)

// Inquiries handles "inquiries list [all|handled|not-handled] [newest|oldest]"
// and the per-inquiry actions.
func (a *App) Inquiries(ctx context.Context, args []string) error {
	action, rest := subcommand(args)
	switch action {
	case "list":
		q := services.InquiryQuery{Handled: services.FilterAll, Order: services.Newest}
		if len(rest) > 0 {
			q.Handled = services.HandledFilter(rest[0])
		}
		if len(rest) > 1 {
			q.Order = services.SortOrder(rest[1])
		}
		list, err := a.content.Inquiries(ctx, q)
		if err != nil {
			return err
		}
		rows := make([][]string, len(list))
		for i, in := range list {
			handled := "no"
			if in.Handled {
				handled = "yes"
			}
			rows[i] = []string{in.ID, in.Name, in.Email, handled, date(in.CreatedAt)}
		}
		table(a.out, "ID\tNAME\tEMAIL\tHANDLED\tRECEIVED", rows)
		return nil

	case "show":
		id, err := requireID("inquiries show", rest)
		if err != nil {
			return err
		}
		in, err := a.content.GetInquiry(ctx, id)
		if err != nil {
			return err
		}
		printInquiry(a.out, in)
		return nil

	case "handle":
		id, err := requireID("inquiries handle", rest)
		if err != nil {
			return err
		}
		if _, err := a.content.MarkInquiryHandled(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Inquiry %s marked as handled\n", id)
		return nil

	case "delete":
		id, err := requireID("inquiries delete", rest)
		if err != nil {
			return err
		}
		return a.confirmDelete(ctx, "inquiry "+id, func() error { return a.content.DeleteInquiry(ctx, id) })
	}
	return usage("inquiries [list [all|handled|not-handled] [newest|oldest]|show|handle|delete] [id]")
}

// Contact submits the public contact form. It works without signing in.
func (a *App) Contact(ctx context.Context) error {
	var (
		in  models.Inquiry
		err error
	)
	if in.Name, err = GetSimpleText(a.reader, "Your name", a.out); err != nil {
		return err
	}
	if in.Email, err = GetSimpleText(a.reader, "Your email", a.out); err != nil {
		return err
	}
	if in.Message, err = GetMultiline(a.reader, "Message", a.out); err != nil {
		return err
	}
	if err := a.content.SubmitContact(ctx, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Thank you! Your message has been sent.")
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.content.Dashboard(ctx)
	if err != nil {
		return err
	}
	table(a.out, "SECTION\tCOUNT", [][]string{
		{"Services", fmt.Sprint(len(d.Services))},
		{"Blog posts", fmt.Sprint(len(d.BlogPosts))},
		{"Testimonials", fmt.Sprint(len(d.Testimonials))},
		{"Inquiries", fmt.Sprintf("%d (%d open)", len(d.Inquiries), d.OpenInquiries())},
	})

	if open := d.OpenInquiries(); open > 0 {
		fmt.Fprintln(a.out, "\nLatest open inquiries:")
		shown := 0
		for _, in := range d.Inquiries {
			if in.Handled {
				continue
			}
			fmt.Fprintf(a.out, "  %s  %s <%s>: %s\n", date(in.CreatedAt), in.Name, in.Email, excerpt(in.Message, 50))
			if shown++; shown == 5 {
				break
			}
		}
	}
	return nil
}
