// Package errors defines the error kinds of the fishery service.
package errors

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrShipNotFound            = errors.New("ship not found")
	ErrRegistrationNumberTaken = errors.New("registration number already exists")
	ErrPermitNotFound          = errors.New("permit not found")
	ErrInvalidPeriod           = errors.New("end date must be after start date")
	ErrTripNotFound            = errors.New("fishing trip not found")
	ErrTripAlreadyCompleted    = errors.New("fishing trip is already completed")
	ErrInspectionNotFound      = errors.New("inspection not found")
	ErrInvalidInspector        = errors.New("invalid inspector")
	ErrInvalidTargetType       = errors.New("invalid target type")
	ErrFineNotFound            = errors.New("no fine found for this inspection")
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrNotRecreationalFisher   = errors.New("only recreational fishers can purchase tickets")
	ErrInvalidTicketType       = errors.New("invalid ticket type")
	ErrTransactionAborted      = errors.New("transaction aborted")
)
