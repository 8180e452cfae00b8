package response

type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// OK wraps a payload in a successful envelope.
func OK[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: data}
}

// Fail builds an error envelope.
func Fail(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}
