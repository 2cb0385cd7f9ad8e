package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHelpers_MatchTheirSentinels(t *testing.T) {
	assert.True(t, IsBufferFull(ErrBufferFull))
	assert.True(t, IsUnsupportedFormat(ErrUnsupportedFormat))
	assert.True(t, IsNoFiles(ErrNoFiles))
	assert.True(t, IsSessionNotFound(ErrSessionNotFound))
	assert.True(t, IsValidation(ErrValidation))
}

func TestIsHelpers_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("adding report.csv: %w", ErrUnsupportedFormat)
	assert.True(t, IsUnsupportedFormat(wrapped))
	assert.False(t, IsBufferFull(wrapped))
}

func TestIsHelpers_RejectOtherErrors(t *testing.T) {
	other := fmt.Errorf("something else")
	assert.False(t, IsBufferFull(other))
	assert.False(t, IsNoFiles(other))
	assert.False(t, IsSessionNotFound(other))
}
