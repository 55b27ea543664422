package v1

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flowspace/flowspace/internal/domain"
)

// apiError maps domain sentinels onto HTTP problem responses. Anything
// unrecognized is a 500 with the action the caller was attempting.
func apiError(err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(action + ": not found")
	case errors.Is(err, domain.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		return huma.Error503ServiceUnavailable("store unavailable", err)
	default:
		return huma.Error500InternalServerError("failed to "+action, err)
	}
}
