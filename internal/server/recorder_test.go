package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRecorderResponseController(t *testing.T) {
	t.Parallel()

	inner := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: inner, status: http.StatusOK}

	require.NoError(t, http.NewResponseController(rec).Flush())
	assert.True(t, inner.Flushed)
	assert.Same(t, inner, rec.Unwrap())
}
