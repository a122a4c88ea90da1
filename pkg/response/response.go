package response

// New generic response spec
type APIResponseCode int

const (
	APIResponseCodeOK           APIResponseCode = 0
	APIResponseCodeBadRequest   APIResponseCode = 40000
	APIResponseCodeUnauthorized APIResponseCode = 40100
	APIResponseCodeConflict     APIResponseCode = 40900
	APIResponseCodeError        APIResponseCode = 50000
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:           "ok",
	APIResponseCodeBadRequest:   "bad request",
	APIResponseCodeUnauthorized: "unauthorized",
	APIResponseCodeConflict:     "conflict",
	APIResponseCodeError:        "unexpected error",
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / MessageT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	Success bool            `json:"success"`
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data,omitempty"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Success: true, Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// MessageT returns a successful response carrying only a message.
func MessageT(message string) *APIResponse[any] {
	return &APIResponse[any]{Success: true, Code: APIResponseCodeOK, Message: message}
}

// ErrorT returns an error response. An empty message falls back to the code's default text.
func ErrorT(code APIResponseCode, message string) *APIResponse[any] {
	if message == "" {
		message = codeToMsg[code]
	}
	return &APIResponse[any]{Success: false, Code: code, Message: message}
}
