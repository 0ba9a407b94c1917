package services

import (
	"errors"

	"stockroom/internal/repositories"
	pkgerrors "stockroom/pkg/errors"
)

// storeError maps a repository failure onto a coded error. notFound is the
// message used when the record is missing.
func storeError(err error, notFound, internal string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	case errors.Is(err, repositories.ErrUnavailable):
		return pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, internal)
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, internal)
	}
}
