package http

import (
	"errors"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/auth"
	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/database/progress"
	"github.com/mrlokans/learnhub/internal/database/reviews"
	"github.com/mrlokans/learnhub/internal/database/subjects"
	"github.com/mrlokans/learnhub/internal/search"
)

var validationErrors = []error{
	auth.ErrEmailRequired,
	auth.ErrPasswordRequired,
	auth.ErrNameRequired,
	auth.ErrEmailInvalid,
	auth.ErrPasswordTooShort,
	auth.ErrPasswordTooLong,
	search.ErrEmptyQuery,
	progress.ErrInvalidPercentage,
	reviews.ErrInvalidRating,
	subjects.ErrInvalidName,
}

var authErrors = []error{
	auth.ErrInvalidCredentials,
	auth.ErrInvalidToken,
	auth.ErrTokenExpired,
	auth.ErrMissingToken,
}

// toAppError classifies err into the error taxonomy. Errors already carrying a
// kind pass through; unknown errors become internal.
func toAppError(err error) *apperr.Error {
	if ae, ok := apperr.As(err); ok {
		return ae
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return apperr.Validation(target.Error())
		}
	}
	for _, target := range authErrors {
		if errors.Is(err, target) {
			return apperr.Auth(target.Error())
		}
	}

	var providerErr *search.ProviderError
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return apperr.Forbidden(err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		return apperr.Conflict(auth.ErrEmailTaken.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		return apperr.NotFound("user")
	case errors.Is(err, database.ErrNotFound):
		return apperr.NotFound("record")
	case errors.Is(err, database.ErrDuplicate):
		return apperr.Conflict(database.ErrDuplicate.Error())
	case errors.Is(err, database.ErrInUse):
		return apperr.Conflict(database.ErrInUse.Error())
	case errors.Is(err, database.ErrMissingReference):
		return apperr.NotFound("referenced record")
	case errors.Is(err, search.ErrNotConfigured):
		return apperr.Upstream(search.ErrNotConfigured.Error(), err)
	case errors.As(err, &providerErr):
		return apperr.Upstream("search provider request failed", err)
	}
	return apperr.Internal(err)
}
