package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
)

// recordedError captures what the middleware handed to the error handler.
type recordedError struct {
	err error
}

// handler renders errors the way the API responder does, minus logging.
func (rec *recordedError) handler(w http.ResponseWriter, r *http.Request, err error) {
	rec.err = err
	appErr := apperr.From(err)
	resp := shared.ErrorResponse{Message: appErr.ClientMessage()}
	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Fields
	}
	shared.RespondWithJSON(w, r, appErr.StatusCode(), resp)
}

func decodeError(body []byte) (shared.ErrorResponse, error) {
	var resp shared.ErrorResponse
	err := json.Unmarshal(body, &resp)
	return resp, err
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})
