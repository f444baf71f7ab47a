package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrBadRequest is returned when a request references the wrong entity
	// or asks for an operation that makes no sense in the current state
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition is returned when a job is asked to move to a
	// status its current status does not allow
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCapacityExceeded is returned when a job already carries its
	// maximum number of technicians
	ErrCapacityExceeded = errors.New("technician capacity exceeded")

	// ErrDuplicateAssignment is returned when a technician is assigned to
	// the same job twice
	ErrDuplicateAssignment = errors.New("technician already assigned")

	// ErrAlreadyAssigned is returned when a single-assignee job has
	// already been claimed by someone else
	ErrAlreadyAssigned = errors.New("job already assigned to another technician")

	// ErrWrongCredentials is returned when a login fails. It deliberately
	// does not distinguish an unknown username from a wrong password.
	ErrWrongCredentials = errors.New("invalid username or password")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrCustomerNotFound is returned when a customer is not found
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrTechnicianInactive is returned when work is routed to a
	// deactivated or non-technician account
	ErrTechnicianInactive = errors.New("technician is not an active technician")

	// ErrAMCInactive is returned when a callback is raised for a customer
	// whose maintenance contract has lapsed
	ErrAMCInactive = errors.New("customer AMC is not active")
)
