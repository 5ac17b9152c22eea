package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/client/client"
	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/validate"
)

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var fe validate.FieldErrors
	switch {
	case errors.As(err, &fe):
		keys := make([]string, 0, len(fe))
		for k := range fe {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, len(keys))
		for i, k := range keys {
			lines[i] = fmt.Sprintf("  %s: %s", k, fe[k])
		}
		return "Please fix:\n" + strings.Join(lines, "\n")
	case errors.Is(err, errUsage):
		return err.Error()
	case errors.Is(err, client.ErrUnauthorized):
		if msg := client.Message(err); msg != "" {
			return "Not authorized: " + msg
		}
		return "Not authorized. Use 'login' to sign in."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	case errors.Is(err, client.ErrNotFound):
		return "Not found."
	}
	if msg := client.Message(err); msg != "" {
		return "Error: " + msg
	}
	return "Error: " + err.Error()
}

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func table(w io.Writer, header string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func printService(w io.Writer, s models.Service) {
	fmt.Fprintf(w, "ID:          %s\n", s.ID)
	fmt.Fprintf(w, "Title:       %s\n", s.Title)
	fmt.Fprintf(w, "Slug:        %s\n", s.Slug)
	fmt.Fprintf(w, "Short:       %s\n", s.ShortDesc)
	if len(s.Images) > 0 {
		fmt.Fprintf(w, "Images:      %s\n", strings.Join(s.Images, ", "))
	}
	if s.FullDesc != "" {
		fmt.Fprintf(w, "\n%s\n", s.FullDesc)
	}
}

func printBlogPost(w io.Writer, p models.BlogPost) {
	fmt.Fprintf(w, "ID:          %s\n", p.ID)
	fmt.Fprintf(w, "Title:       %s\n", p.Title)
	fmt.Fprintf(w, "Slug:        %s\n", p.Slug)
	fmt.Fprintf(w, "Status:      %s\n", p.Status)
	if p.Category != nil {
		name := p.Category.Name
		if name == "" {
			name = p.Category.ID
		}
		fmt.Fprintf(w, "Category:    %s\n", name)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "Tags:        %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(w, "Created:     %s\n", date(p.CreatedAt))
	fmt.Fprintf(w, "\n%s\n", p.Content)
}

func printInquiry(w io.Writer, in models.Inquiry) {
	fmt.Fprintf(w, "ID:          %s\n", in.ID)
	fmt.Fprintf(w, "From:        %s <%s>\n", in.Name, in.Email)
	fmt.Fprintf(w, "Received:    %s\n", date(in.CreatedAt))
	fmt.Fprintf(w, "Handled:     %t\n", in.Handled)
	fmt.Fprintf(w, "\n%s\n", in.Message)
}
