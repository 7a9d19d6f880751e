package catalog

import "fmt"

// RequestError is returned when the catalog API fails in a way that is
// fatal to the run (transport failure, server error).
type RequestError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("requested %q got %q", e.URL, e.Status)
	if e.Body != "" {
		msg += "\n" + e.Body
	}
	return msg
}

// ValidationError is returned when the catalog rejects a single payload,
// for example a malformed value. It is recovered per record: the record
// is logged and skipped while the run continues.
type ValidationError struct {
	URL  string
	Body string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog rejected payload at %q: %s", e.URL, e.Body)
}

// NotFoundError is returned when a referenced resource does not exist.
// Callers relying on optional auxiliary resources degrade gracefully on it.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}
