package errors

import "net/http"

const (
	UnknownErrorCode              = 100_001
	DataValidationFailedErrorCode = 100_002
	PermissionDeniedErrorCode     = 100_003
	LoginRequiredErrorCode        = 100_004
)

var UnknownError = new(UnknownErrorCode, "UnknownError", "unexpected error: %s")

// DataValidationFailedError indicates user gives data which does not pass validation
var DataValidationFailedError = new(DataValidationFailedErrorCode, "DataValidationFailed", "Data validation failed: %s")

// PermissionDeniedError indicates the signed in user lacks the required permission
var PermissionDeniedError = new(PermissionDeniedErrorCode, "PermissionDenied", "Permission %s is required")

// LoginRequiredError indicates the request needs a signed in user
var LoginRequiredError = new(LoginRequiredErrorCode, "LoginRequired", "Login is required")

// StatusCode maps an error to the HTTP status it is answered with.
func StatusCode(err error) int {

	assertedError, ok := TryAssertError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch assertedError.Code {
	case ObjectIDNotFoundErrorCode, PageOutOfRangeErrorCode, InvalidPageErrorCode:
		return http.StatusNotFound
	case PermissionDeniedErrorCode:
		return http.StatusForbidden
	case LoginRequiredErrorCode:
		return http.StatusUnauthorized
	case ObjectInUseErrorCode:
		return http.StatusConflict
	case UnknownErrorCode:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
