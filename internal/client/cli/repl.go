package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Services(ctx context.Context, args []string) error
	Blog(ctx context.Context, args []string) error
	Testimonials(ctx context.Context, args []string) error
	Inquiries(ctx context.Context, args []string) error
	Contact(ctx context.Context) error
}

var errUsage = errors.New("usage")

// runREPL starts a simple read–eval–print loop for the SiteAdmin CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Commands
//
//	Signed out:
//	  - help                    show available commands
//	  - login                   sign in
//	  - contact                 submit the public contact form
//	  - status                  show session state
//	  - exit | quit             leave the program
//
//	Signed in, additionally:
//	  - dashboard               overview of all content
//	  - services [list|show|add|edit|delete] [id]
//	  - blog [list|show|add|edit|delete] [id|status]
//	  - testimonials [list|add|edit|delete] [id]
//	  - inquiries [list|show|handle|delete] [filter order|id]
//	  - logout                  sign out
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("siteadmin %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, services, blog, testimonials, inquiries, contact, status, logout, exit")
			} else {
				printlnFn("Available commands: login, contact, status, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "contact":
			cmdErr = a.Contact(ctx)

		case "dashboard", "services", "blog", "testimonials", "inquiries":
			if !a.isLoggedIn() {
				printlnFn("Please log in first.")
				continue
			}
			switch cmd {
			case "dashboard":
				cmdErr = a.Dashboard(ctx)
			case "services":
				cmdErr = a.Services(ctx, args)
			case "blog":
				cmdErr = a.Blog(ctx, args)
			case "testimonials":
				cmdErr = a.Testimonials(ctx, args)
			case "inquiries":
				cmdErr = a.Inquiries(ctx, args)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describe(cmdErr))
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
