package notion

import (
	"errors"
	"fmt"
	"time"
)

// Notion-specific errors.
var (
	// ErrConfigInvalidID indicates a configured page or database id is not a UUID.
	ErrConfigInvalidID = errors.New("notion: invalid entity id")

	// ErrConfigNoEntryPoints indicates the source has neither page ids nor database ids.
	ErrConfigNoEntryPoints = errors.New("notion: no page or database ids configured")

	// ErrStructuralViolation indicates a block claims children its kind
	// cannot semantically have. This signals an upstream contract
	// violation and is always fatal to the current render.
	ErrStructuralViolation = errors.New("notion: block kind cannot have children")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("notion: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a Notion API error response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// DecodeError represents a malformed or unrecognised remote payload.
// It is fatal to the current render and never retried.
type DecodeError struct {
	BlockID string
	Kind    string
	Reason  string
}

func (e *DecodeError) Error() string {
	if e.BlockID != "" {
		return fmt.Sprintf("notion: decode block %s (%s): %s", e.BlockID, e.Kind, e.Reason)
	}
	return fmt.Sprintf("notion: decode (%s): %s", e.Kind, e.Reason)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsRemote checks if the error came back from the Notion API rather than
// from local decoding or traversal logic. The crawler treats remote errors
// as entry-local and recoverable; everything else propagates.
func IsRemote(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return true
	}
	return IsRateLimited(err)
}
