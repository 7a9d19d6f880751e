package source

import "fmt"

// RequestError is returned when the source API answers with a non-success
// status. It is fatal to the current run; the caller resubmits the job at
// the last known watermark instead of retrying automatically.
type RequestError struct {
	// URL is the requested URL.
	URL string
	// StatusCode is the numeric HTTP status.
	StatusCode int
	// Status is the rendered status line.
	Status string
	// Body is the response body, when present.
	Body string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("requested %q got %q", e.URL, e.Status)
	if e.Body != "" {
		msg += "\n" + e.Body
	}
	return msg
}
