package client

import "encoding/json"

// errorBody is the JSON shape of the service's error responses.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// errorMessage extracts the message field from an error response body,
// falling back to the raw body for non-JSON errors.
func errorMessage(body []byte) string {
	var decoded errorBody
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Message != "" {
		return decoded.Message
	}
	return string(body)
}

// badRequestError decodes a 400 response into a BadRequestError with
// per-field messages when the service provides them.
func badRequestError(body []byte) *BadRequestError {
	var decoded errorBody
	if err := json.Unmarshal(body, &decoded); err != nil {
		return &BadRequestError{Message: string(body)}
	}
	msg := decoded.Message
	if msg == "" {
		msg = string(body)
	}
	return &BadRequestError{Message: msg, FieldErrors: decoded.Errors}
}

// decodeJSON unmarshals a response body, wrapping failures in a
// ParseError that carries the raw payload.
func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{RawResponse: string(data), Cause: err}
	}
	return nil
}
