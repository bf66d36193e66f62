package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ListEnvelope mirrors the upstream commerce API's paginated list shape.
type ListEnvelope[T any] struct {
	Data      []T `json:"data"`
	Count     int `json:"count"`
	Total     int `json:"total"`
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
}

// EmptyList is the degraded page served when an upstream list response
// cannot be used.
func EmptyList[T any](page int) *ListEnvelope[T] {
	return &ListEnvelope[T]{Data: []T{}, Page: page}
}
