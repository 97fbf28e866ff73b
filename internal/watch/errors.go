package watch

import (
	"errors"
	"net/http"

	"github.com/stwalsh4118/vidarkiv/internal/metadata"
)

// Messages shown on the page for loader failures
const (
	msgNotFound = "Unable to find video"
	msgInternal = "Unable to load video"
)

// UserMessage returns the text shown to the viewer for err
func UserMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var parseErr *metadata.ParseError
	if errors.As(err, &parseErr) {
		return "Unable to parse meta.json file `" + parseErr.Err.Error() + "`"
	}

	if metadata.IsNotFound(err) {
		return msgNotFound
	}

	return msgInternal
}

// StatusCode maps a watch failure to the HTTP status of the error page
func StatusCode(err error) int {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case metadata.IsNotFound(err):
		return http.StatusNotFound
	case metadata.IsParseError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
