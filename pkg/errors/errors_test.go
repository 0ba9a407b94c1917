package errors_test

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "stockroom/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestMetadataFor(t *testing.T) {
	cases := map[pkgerrors.Code]int{
		pkgerrors.CodeInvalidInput: http.StatusBadRequest,
		pkgerrors.CodeNotFound:     http.StatusNotFound,
		pkgerrors.CodeConflict:     http.StatusBadRequest,
		pkgerrors.CodeUnavailable:  http.StatusInternalServerError,
		pkgerrors.CodeInternal:     http.StatusInternalServerError,
		pkgerrors.Code("BOGUS"):    http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, pkgerrors.MetadataFor(code).HTTPStatus, string(code))
	}
}

func TestWrapUnwrapAndAs(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := fmt.Errorf("outer: %w", pkgerrors.Wrap(pkgerrors.CodeInternal, cause, "failed to list users"))

	typed := pkgerrors.As(err)
	if assert.NotNil(t, typed) {
		assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
		assert.Equal(t, "failed to list users: connection reset", typed.Public())
	}
	assert.True(t, stdErrors.Is(err, cause))
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal))
}

func TestPublicHidesUnavailableDetails(t *testing.T) {
	err := pkgerrors.Wrap(pkgerrors.CodeUnavailable, stdErrors.New("dial tcp 10.0.0.1:27017"), "store unreachable")
	assert.Equal(t, "internal server error", err.Public())
}

func TestCodeOfUntyped(t *testing.T) {
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.CodeOf(stdErrors.New("boom")))
	assert.False(t, pkgerrors.Is(nil, pkgerrors.CodeInternal))
	assert.Nil(t, pkgerrors.As(nil))
}
