package notion

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: 404}))
	assert.False(t, IsNotFound(&APIError{StatusCode: 500}))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))

	wrapped := fmt.Errorf("fetch page: %w", &APIError{StatusCode: 404})
	assert.True(t, IsNotFound(wrapped))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{StatusCode: 401}))
	assert.False(t, IsUnauthorized(&APIError{StatusCode: 403}))
	assert.False(t, IsUnauthorized(errors.New("plain")))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&RateLimitError{ResetAt: time.Now()}))
	assert.False(t, IsRateLimited(&APIError{StatusCode: 429}))
	assert.False(t, IsRateLimited(nil))
}

func TestIsRemote(t *testing.T) {
	t.Run("api and rate limit errors are remote", func(t *testing.T) {
		assert.True(t, IsRemote(&APIError{StatusCode: 500}))
		assert.True(t, IsRemote(&RateLimitError{}))
		assert.True(t, IsRemote(fmt.Errorf("wrapped: %w", &APIError{StatusCode: 404})))
	})

	t.Run("local errors are not", func(t *testing.T) {
		assert.False(t, IsRemote(&DecodeError{Kind: "block"}))
		assert.False(t, IsRemote(ErrStructuralViolation))
		assert.False(t, IsRemote(errors.New("plain")))
		assert.False(t, IsRemote(nil))
	})
}

func TestErrorMessages(t *testing.T) {
	t.Run("api error names status and code", func(t *testing.T) {
		err := &APIError{StatusCode: 400, Code: "validation_error", Message: "bad cursor"}
		assert.Contains(t, err.Error(), "400")
		assert.Contains(t, err.Error(), "validation_error")
		assert.Contains(t, err.Error(), "bad cursor")
	})

	t.Run("decode error names the block", func(t *testing.T) {
		err := &DecodeError{BlockID: "b1", Kind: "paragraph", Reason: "bad json"}
		assert.Contains(t, err.Error(), "b1")
		assert.Contains(t, err.Error(), "paragraph")

		bare := &DecodeError{Kind: "page", Reason: "missing id"}
		assert.Contains(t, bare.Error(), "page")
	})
}
