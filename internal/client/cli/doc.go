// Package cli provides the interactive SiteAdmin command-line client.
//
// It wires configuration, the local token store, the authenticated API
// client and the application services into a REPL that replaces the
// browser admin panel. Typical flow: sign in, look at the dashboard, then
// manage services, blog posts, testimonials and inquiries.
//
// The App is also the client's sign-in redirector: when a token refresh
// fails for good it reports the expired session and drops back to the
// signed-out prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
