// Package types holds the JSON shapes shared by every API response.
package types

// SuccessEnvelope wraps every successful response body under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ListData is the payload for endpoints returning collections, so clients
// get a count without measuring the slice themselves.
type ListData struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// APIError is the public error shape. Details is only populated for codes
// that allow surfacing them (field-level validation errors).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under "error".
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
