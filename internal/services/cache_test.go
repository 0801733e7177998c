package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCacheKey(t *testing.T) {
	assert.Equal(t, "optimize:result:abc123", RunCacheKey("abc123"))
	assert.NotEqual(t, RunCacheKey("abc123"), RunCacheKey("def456"))
}
