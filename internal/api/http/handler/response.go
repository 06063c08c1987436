package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dtroode/socialnet-server/internal/apierror"
	"github.com/dtroode/socialnet-server/internal/logger"
)

// messageResponse is the body of every error and of message-only successes.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, messageResponse{Message: message})
}

// WriteError renders err as {"message": ...}. Anything that is not an
// *apierror.APIError becomes a 500 without leaking details.
func WriteError(w http.ResponseWriter, log *logger.Logger, err error) {
	apiErr, ok := apierror.As(err)
	if !ok {
		log.Error("HTTP handler: unhandled error",
			"error", err.Error())
		apiErr = apierror.NewErrInternalServerError(err)
	}

	writeMessage(w, apiErr.HTTPCode, apiErr.Message)
}

// decodeBody reads a JSON object from r. An empty body decodes as {}.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apierror.NewErrInvalidRequest("Invalid request body")
}
