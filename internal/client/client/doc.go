// Package client is the authenticated API client for the site backend.
//
// # Overview
//
// APIClient.Do runs every request through two interceptors around a
// transport.Transport:
//
//  1. The request interceptor attaches "Authorization: Bearer <token>" from
//     the token store and sets the JSON content type unless the body is a
//     multipart form.
//  2. The response interceptor hands a 401 for a request that has not been
//     retried to the refresh.Coordinator, which performs a single refresh
//     shared by all concurrently failing requests and replays each of them
//     once with the new token. Anything else is returned unchanged.
//
// On top of Do the package exposes typed calls for every backend endpoint
// (auth, services, blog, categories, clients, inquiries, testimonials).
// They unwrap the backend's {"success","message","data"} envelope.
//
// # Error Handling
//
// Failures map to sentinel errors matched with errors.Is: ErrUnauthorized,
// ErrUnavailable, ErrNotFound, ErrRejected. The underlying
// *transport.StatusError stays reachable through errors.As.
//
// InitDatabase and RunMigrations bootstrap the SQLite file that backs the
// token store.
package client
