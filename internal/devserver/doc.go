// Package devserver is an in-memory stand-in for the site's REST backend.
//
// It serves the same endpoint catalogue the CLI talks to, wraps every
// response in the {success, message, data} envelope and issues short-lived
// HS256 access tokens together with rotating refresh tokens, so the
// client's refresh path can be exercised locally and in tests.
package devserver
