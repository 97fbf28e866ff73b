// Package watch renders the archive watch page: a video player with timed
// slide overlays and a chapter selector.
package watch

import (
	"fmt"
	"regexp"
)

const (
	// QueryParam is the query parameter carrying the video GUID
	QueryParam = "watch"

	// videoIDLength is the length of a canonical GUID string
	videoIDLength = 36
)

var videoIDPattern = regexp.MustCompile(`^[-a-f0-9]+$`)

// ValidationError reports a missing or malformed watch parameter
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateVideoID checks the watch parameter. Checks run in a fixed order and
// the first failure is returned.
func ValidateVideoID(id string) error {
	if id == "" {
		return &ValidationError{Message: "You need to provide a query parameter `watch` with a guid"}
	}

	if !videoIDPattern.MatchString(id) {
		return &ValidationError{Message: "The query parameter `watch` contains illegal characters"}
	}

	if len(id) != videoIDLength {
		return &ValidationError{
			Message: fmt.Sprintf("Expected query parameter `watch` to be of length %d (not %d)", videoIDLength, len(id)),
		}
	}

	return nil
}
