package errors

import "net/http"

// AppError is a stable, user-visible error definition. Code and Message are
// the only fields ever rendered to a client; Status selects the HTTP status.
type AppError struct {
	Code    int
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return e.Message
}

// System errors (99xx).
var (
	ErrUncategorized = &AppError{Code: 9999, Message: "uncategorized error", Status: http.StatusInternalServerError}
)

// Validation errors (10xx).
var (
	ErrInvalidResourceID = &AppError{Code: 1001, Message: "resource id must be a positive number", Status: http.StatusBadRequest}
	ErrInvalidBuildingID = &AppError{Code: 1002, Message: "building id must not be empty", Status: http.StatusBadRequest}
	ErrInvalidPeriod     = &AppError{Code: 1003, Message: "billing period must not be empty", Status: http.StatusBadRequest}
	ErrEmailRequired     = &AppError{Code: 1004, Message: "email address must not be empty", Status: http.StatusBadRequest}
)

// Business errors (20xx).
var (
	ErrBuildingNotFound         = &AppError{Code: 2001, Message: "building not found", Status: http.StatusNotFound}
	ErrRoomNotFound             = &AppError{Code: 2002, Message: "room not found", Status: http.StatusNotFound}
	ErrInvoiceExists            = &AppError{Code: 2003, Message: "an invoice for this room and period already exists", Status: http.StatusConflict}
	ErrInvoiceNotFound          = &AppError{Code: 2004, Message: "invoice not found", Status: http.StatusNotFound}
	ErrTenantNotFound           = &AppError{Code: 2005, Message: "tenant not found", Status: http.StatusNotFound}
	ErrReadingNotFound          = &AppError{Code: 2006, Message: "utility reading not found", Status: http.StatusNotFound}
	ErrReadingExists            = &AppError{Code: 2007, Message: "a reading for this room and month already exists", Status: http.StatusConflict}
	ErrInvitationNotFound       = &AppError{Code: 2008, Message: "invitation not found", Status: http.StatusNotFound}
	ErrInvitationPendingExists  = &AppError{Code: 2009, Message: "a pending invitation for this email already exists", Status: http.StatusConflict}
	ErrInvitationNotAcceptable  = &AppError{Code: 2010, Message: "invitation is expired or no longer pending", Status: http.StatusConflict}
	ErrInvitationEmailMismatch  = &AppError{Code: 2011, Message: "invitation was issued for a different email address", Status: http.StatusForbidden}
	ErrContractHolderExists     = &AppError{Code: 2012, Message: "room already has an active contract holder", Status: http.StatusConflict}
	ErrMissingPreviousReading   = &AppError{Code: 2013, Message: "previous utility reading is missing for this room", Status: http.StatusConflict}
	ErrInvoiceAlreadyPaid       = &AppError{Code: 2014, Message: "invoice is already paid", Status: http.StatusConflict}
	ErrInvoiceNotPayable        = &AppError{Code: 2015, Message: "invoice cannot be paid in its current state", Status: http.StatusConflict}
)

// Authentication errors (30xx).
var (
	ErrUsernameRequired   = &AppError{Code: 3001, Message: "username must not be empty", Status: http.StatusBadRequest}
	ErrPasswordRequired   = &AppError{Code: 3002, Message: "password must not be empty", Status: http.StatusBadRequest}
	ErrTokenRequired      = &AppError{Code: 3003, Message: "token must not be empty", Status: http.StatusBadRequest}
	ErrInvalidCredentials = &AppError{Code: 3005, Message: "invalid username or password", Status: http.StatusUnauthorized}
	ErrUserNotFound       = &AppError{Code: 3006, Message: "user not found", Status: http.StatusNotFound}
	ErrUserInactive       = &AppError{Code: 3007, Message: "user account is deactivated", Status: http.StatusForbidden}
	ErrInvalidToken       = &AppError{Code: 3009, Message: "token is invalid or expired", Status: http.StatusUnauthorized}
	ErrUnauthorized       = &AppError{Code: 3010, Message: "authentication required", Status: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: 3011, Message: "access denied", Status: http.StatusForbidden}
	ErrUsernameTaken      = &AppError{Code: 3012, Message: "username is already taken", Status: http.StatusConflict}
)
