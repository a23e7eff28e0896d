package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindAuth, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUpstream, http.StatusBadGateway},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindInternal, http.StatusInternalServerError},
		{Kind("bogus"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Status())
		})
	}
}

func TestAsThroughWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("search: %w", Upstream("search provider unavailable", cause))

	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindUpstream, e.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "search provider unavailable: connection refused", e.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("resource")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, "resource not found", NotFound("resource").Error())
}

func TestIsServerSide(t *testing.T) {
	assert.True(t, KindInternal.IsServerSide())
	assert.True(t, KindUpstream.IsServerSide())
	assert.False(t, KindConflict.IsServerSide())
}
