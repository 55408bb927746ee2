package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
// Notion internal integration tokens never expire; OAuth implementations
// handle refresh transparently behind this interface.
type TokenProvider interface {
	// GetToken returns a valid access token.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if valid authentication is available.
	IsAuthenticated() bool
}
