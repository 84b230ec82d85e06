package services

type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Validation error"
}

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// UpstreamError covers webhook delivery failures.
type UpstreamError struct{ Message string }

func (e *UpstreamError) Error() string { return e.Message }
