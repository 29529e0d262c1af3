package middleware

import (
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
)

// Messages for rejected requests.
const (
	MsgValidationFailed = "Validation failed"
	MsgInvalidBody      = "Invalid request body"
)

// Schema declares what a route accepts. Body returns a fresh pointer to
// decode the JSON body into; Params maps chi URL parameters to validator tags.
type Schema struct {
	Body   func() any
	Params map[string]string
}

// Validate decodes and validates the request against schema before the
// handler runs. The decoded body is available through shared.Body.
func Validate(schema Schema, onError ErrorHandler) func(http.Handler) http.Handler {
	names := make([]string, 0, len(schema.Params))
	for name := range schema.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var fields []shared.FieldError
			for _, name := range names {
				if fe := shared.ValidateVar(name, chi.URLParam(r, name), schema.Params[name]); fe != nil {
					fields = append(fields, *fe)
				}
			}
			if len(fields) > 0 {
				onError(w, r, apperr.Wrap(apperr.KindBadRequest, MsgValidationFailed,
					&shared.ValidationError{Fields: fields}))
				return
			}

			if schema.Body == nil {
				next.ServeHTTP(w, r)
				return
			}

			body := schema.Body()
			if err := shared.DecodeJSON(w, r, body); err != nil {
				onError(w, r, apperr.Wrap(apperr.KindBadRequest, MsgInvalidBody, err))
				return
			}
			if err := shared.ValidateRequest(body); err != nil {
				var verr *shared.ValidationError
				if errors.As(err, &verr) {
					onError(w, r, apperr.Wrap(apperr.KindBadRequest, MsgValidationFailed, verr))
					return
				}
				onError(w, r, apperr.Internal(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(shared.WithBody(r.Context(), body)))
		})
	}
}
