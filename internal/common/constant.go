// Package common contains shared constants and small helpers used across
// the SiteAdmin client and the development backend.
package common

// Header names and schemes used on every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	BearerScheme            = "Bearer"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
	JSONContentType         = "application/json"
)

// Metadata keys under which the credential pair is persisted.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)
