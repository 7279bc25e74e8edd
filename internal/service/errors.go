package service

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrHouseNumberTaken     = errors.New("house number already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrResidentNotFound     = errors.New("resident not found")
	ErrResidentInactive     = errors.New("cannot create payments for inactive residents")
	ErrNoActiveResidents    = errors.New("no active residents to assign payments")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentState  = errors.New("payment is not in a payable state")
	ErrPaymentNotPaid       = errors.New("payment must be marked as paid")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrFileNotFound         = errors.New("file not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotAllowed           = errors.New("not authorized")
	ErrPaymentNotSucceeded  = errors.New("payment was not successful")
	ErrBadSignature         = errors.New("webhook signature verification failed")
)
