package httpserver

import (
	"net/http"
)

// apiError maps a service-level failure to an HTTP status. Most constructors
// below are scaffolding carried for future routes; today only not-found and
// service-unavailable are raised.
type apiError struct {
	status  int
	code    string
	message string
	headers map[string]string
}

func (e *apiError) Error() string {
	return e.message
}

func errValidation(message string) *apiError {
	return &apiError{status: http.StatusUnprocessableEntity, code: "VALIDATION_FAILED", message: message}
}

func errNotFound(message string) *apiError {
	return &apiError{status: http.StatusNotFound, code: "NOT_FOUND", message: message}
}

func errUnauthorized(message string) *apiError {
	return &apiError{
		status:  http.StatusUnauthorized,
		code:    "UNAUTHORIZED",
		message: message,
		headers: map[string]string{"WWW-Authenticate": "Bearer"},
	}
}

func errForbidden(message string) *apiError {
	return &apiError{status: http.StatusForbidden, code: "FORBIDDEN", message: message}
}

func errConflict(message string) *apiError {
	return &apiError{status: http.StatusConflict, code: "CONFLICT", message: message}
}

func errInternal(message string) *apiError {
	return &apiError{status: http.StatusInternalServerError, code: "INTERNAL_ERROR", message: message}
}

func errServiceUnavailable(message string) *apiError {
	return &apiError{status: http.StatusServiceUnavailable, code: "SERVICE_UNAVAILABLE", message: message}
}

// writeAPIError writes the taxonomy error as a JSON response, including any
// challenge headers the error carries.
func writeAPIError(w http.ResponseWriter, e *apiError) {
	for k, v := range e.headers {
		w.Header().Set(k, v)
	}
	writeJSON(w, e.status, errorResponse{Error: e.message, Code: e.code})
}
