// Package apperr defines the error taxonomy surfaced by API operations.
//
// Every operation ends in exactly one success payload or one *Error. Each
// error carries a machine-readable code and an HTTP status; the status is
// the stable client-fault/server-fault classification, separate from the
// human-readable message. The Cause field is for server-side logging only
// and is never written to clients.
package apperr

import "net/http"

// Error is the canonical API error type.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`
	Cause      error  `json:"-"`
}

// Error implements the error interface with the client-safe message.
func (e *Error) Error() string { return e.Message }

// Unwrap lets errors.Is/As traverse into the cause.
func (e *Error) Unwrap() error { return e.Cause }

// ClientFault reports whether the error is classified as the caller's fault.
func (e *Error) ClientFault() bool { return e.HTTPStatus < 500 }

// Unauthenticated covers missing, malformed, and expired credentials.
func Unauthenticated(msg string) *Error {
	return &Error{Code: "UNAUTHENTICATED", Message: msg, HTTPStatus: http.StatusUnauthorized}
}

// BadCredentials covers unknown email or wrong password at login.
func BadCredentials(msg string) *Error {
	return &Error{Code: "BAD_CREDENTIALS", Message: msg, HTTPStatus: http.StatusUnauthorized}
}

// Forbidden is a role mismatch: authenticated, but the role may not perform
// the action.
func Forbidden(msg string) *Error {
	return &Error{Code: "FORBIDDEN", Message: msg, HTTPStatus: http.StatusForbidden}
}

// AccountInactive rejects a deactivated user whose token is still valid.
func AccountInactive() *Error {
	return &Error{Code: "ACCOUNT_INACTIVE", Message: "This account has been deactivated", HTTPStatus: http.StatusForbidden}
}

// SubscriptionRequired gates content actions on the subscribed flag.
func SubscriptionRequired() *Error {
	return &Error{Code: "SUBSCRIPTION_REQUIRED", Message: "A subscription is required for this action", HTTPStatus: http.StatusForbidden}
}

// NotAuthorized is an ownership mismatch on a specific resource.
func NotAuthorized(msg string) *Error {
	return &Error{Code: "NOT_AUTHORIZED", Message: msg, HTTPStatus: http.StatusForbidden}
}

// NotFound names the missing resource ("Post", "Comment", "User", ...).
func NotFound(resource string) *Error {
	return &Error{Code: "NOT_FOUND", Message: resource + " not found", HTTPStatus: http.StatusNotFound}
}

// Conflict covers repeated likes/dislikes and duplicate subscriptions.
func Conflict(msg string) *Error {
	return &Error{Code: "CONFLICT", Message: msg, HTTPStatus: http.StatusConflict}
}

// EmailTaken rejects registration with an email present in any variant.
func EmailTaken() *Error {
	return &Error{Code: "EMAIL_TAKEN", Message: "Email already exists", HTTPStatus: http.StatusUnprocessableEntity}
}

// SuperAdminLimit rejects a second superadmin registration.
func SuperAdminLimit() *Error {
	return &Error{Code: "SUPERADMIN_LIMIT", Message: "Another superadmin signup is not allowed", HTTPStatus: http.StatusUnprocessableEntity}
}

// RateLimited rejects requests over the auth endpoint rate limit.
func RateLimited(msg string) *Error {
	return &Error{Code: "RATE_LIMITED", Message: msg, HTTPStatus: http.StatusTooManyRequests}
}

// Validation covers field-constraint failures.
func Validation(msg string) *Error {
	return &Error{Code: "VALIDATION_FAILED", Message: msg, HTTPStatus: http.StatusUnprocessableEntity}
}

// Internal wraps unexpected storage or logic failures. The cause stays
// server-side.
func Internal(cause error) *Error {
	return &Error{Code: "INTERNAL", Message: "Something went wrong", HTTPStatus: http.StatusInternalServerError, Cause: cause}
}
