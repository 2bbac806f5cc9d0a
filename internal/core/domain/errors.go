package domain

import (
	"errors"
	"net/http"
)

// Code is the machine-readable identifier sent in every error envelope.
type Code string

const (
	CodeValidationError      Code = "VALIDATION_ERROR"
	CodeInvalidUserID        Code = "INVALID_USER_ID"
	CodeMissingCredentials   Code = "MISSING_CREDENTIALS"
	CodeNoTokenProvided      Code = "NO_TOKEN_PROVIDED"
	CodeInvalidToken         Code = "INVALID_TOKEN"
	CodeUnauthorizedAccess   Code = "UNAUTHORIZED_ACCESS"
	CodeInvalidCredentials   Code = "INVALID_CREDENTIALS"
	CodeAdminAccessRequired  Code = "ADMIN_ACCESS_REQUIRED"
	CodeUserNotFound         Code = "USER_NOT_FOUND"
	CodeUsersNotFound        Code = "USERS_NOT_FOUND"
	CodeEmailAlreadyExists   Code = "EMAIL_ALREADY_EXISTS"
	CodePhoneAlreadyExists   Code = "PHONE_ALREADY_EXISTS"
	CodeAddressNotFound      Code = "ADDRESS_NOT_FOUND"
	CodeAddressesNotFound    Code = "ADDRESSES_NOT_FOUND"
	CodeAddressLimitExceeded Code = "ADDRESS_LIMIT_EXCEEDED"
	CodeResourceNotFound     Code = "RESOURCE_NOT_FOUND"
	CodeServerError          Code = "SERVER_ERROR"
)

type errorEntry struct {
	status  int
	message string
}

// errorTable is the single source of status and human message per code.
var errorTable = map[Code]errorEntry{
	CodeValidationError: {http.StatusBadRequest,
		"The submitted data contains validation errors. Please review and correct the highlighted fields."},
	CodeInvalidUserID: {http.StatusBadRequest,
		"The provided user ID is invalid or malformed. Please check the ID and try again."},
	CodeMissingCredentials: {http.StatusUnauthorized,
		"Required fields are missing. Please provide all necessary information to proceed."},
	CodeNoTokenProvided: {http.StatusUnauthorized,
		"Access denied. Authentication token is required to access this resource."},
	CodeInvalidToken: {http.StatusForbidden,
		"The authentication token is invalid or has expired. Please log in again to continue."},
	CodeUnauthorizedAccess: {http.StatusUnauthorized,
		"Access denied. You do not have sufficient permissions to perform this action."},
	CodeInvalidCredentials: {http.StatusUnauthorized,
		"The email or password you entered is incorrect. Please verify your credentials and try again."},
	CodeAdminAccessRequired: {http.StatusForbidden,
		"Admin access required. Your account role does not permit this action."},
	CodeUserNotFound: {http.StatusNotFound,
		"The requested user could not be found. The user may not exist or may have been removed."},
	CodeUsersNotFound: {http.StatusNotFound,
		"No users were found in the system. The user database appears to be empty."},
	CodeEmailAlreadyExists: {http.StatusConflict,
		"An account with this email address already exists. Please use a different email or try logging in."},
	CodePhoneAlreadyExists: {http.StatusConflict,
		"This phone number is already associated with another account. Please use a different phone number."},
	CodeAddressNotFound: {http.StatusNotFound,
		"The requested address could not be found or does not belong to your account."},
	CodeAddressesNotFound: {http.StatusNotFound,
		"No addresses were found for this user account."},
	CodeAddressLimitExceeded: {http.StatusBadRequest,
		"You have reached the maximum number of saved addresses. Please remove an existing address before adding a new one."},
	CodeResourceNotFound: {http.StatusNotFound,
		"The requested resource could not be found or may have been moved."},
	CodeServerError: {http.StatusInternalServerError,
		"An unexpected server error occurred. Please try again later or contact support if the problem persists."},
}

// Format messages reported as VALIDATION_ERROR by the field validators.
const (
	MsgInvalidEmailFormat    = "The email address format is invalid. Please enter a valid email address (e.g., user@example.com)."
	MsgInvalidPasswordFormat = "Password must be at least 6 characters long and contain at least one uppercase letter, " +
		"one lowercase letter, one number, and one special character."
)

// AppError is the only error shape that crosses the API boundary.
type AppError struct {
	Status  int
	Message string
	Code    Code
}

func (e *AppError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Is matches on Code so sentinels compare equal to freshly built errors.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewError builds the AppError for code from the central table. Unknown codes
// collapse to SERVER_ERROR.
func NewError(code Code) *AppError {
	entry, ok := errorTable[code]
	if !ok {
		code = CodeServerError
		entry = errorTable[CodeServerError]
	}
	return &AppError{Status: entry.status, Message: entry.message, Code: code}
}

// NewValidationError reports a payload violation with a field-specific message.
func NewValidationError(message string) *AppError {
	if message == "" {
		message = errorTable[CodeValidationError].message
	}
	return &AppError{Status: http.StatusBadRequest, Message: message, Code: CodeValidationError}
}

// Message returns the table message for code.
func Message(code Code) string {
	return NewError(code).Message
}

var (
	ErrValidation           = NewError(CodeValidationError)
	ErrInvalidUserID        = NewError(CodeInvalidUserID)
	ErrMissingCredentials   = NewError(CodeMissingCredentials)
	ErrNoTokenProvided      = NewError(CodeNoTokenProvided)
	ErrInvalidToken         = NewError(CodeInvalidToken)
	ErrUnauthorizedAccess   = NewError(CodeUnauthorizedAccess)
	ErrInvalidCredentials   = NewError(CodeInvalidCredentials)
	ErrAdminAccessRequired  = NewError(CodeAdminAccessRequired)
	ErrUserNotFound         = NewError(CodeUserNotFound)
	ErrUsersNotFound        = NewError(CodeUsersNotFound)
	ErrEmailAlreadyExists   = NewError(CodeEmailAlreadyExists)
	ErrPhoneAlreadyExists   = NewError(CodePhoneAlreadyExists)
	ErrAddressNotFound      = NewError(CodeAddressNotFound)
	ErrAddressesNotFound    = NewError(CodeAddressesNotFound)
	ErrAddressLimitExceeded = NewError(CodeAddressLimitExceeded)
	ErrServer               = NewError(CodeServerError)
)
