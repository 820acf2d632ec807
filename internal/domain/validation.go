package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	videoURLPattern  = regexp.MustCompile(`^https?://(www\.)?(youtube\.com|youtu\.be)`)
	tacterURLPattern = regexp.MustCompile(`^https?://(www\.)?tacter\.gg`)
	youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&]+)`)
)

// ValidVideoURL reports whether url points at the trusted video host.
func ValidVideoURL(url string) bool {
	return videoURLPattern.MatchString(url)
}

// ValidTacterURL reports whether url points at the trusted guide host.
func ValidTacterURL(url string) bool {
	return tacterURLPattern.MatchString(url)
}

// ValidationError is a single (field, reason) save-time failure.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors is the complete list of failures found in one validation pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a failure for field.
func (v *ValidationErrors) Add(field, reason string) {
	*v = append(*v, ValidationError{Field: field, Reason: reason})
}

// Has reports whether any failure was recorded for field.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when no failures were recorded.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
