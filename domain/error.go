package domain

import "errors"

// AppError is a business error carrying the HTTP status code it maps to
type AppError struct {
	Message string
	Code    int
}

func (e *AppError) Error() string {
	return e.Message
}

// Business error values surfaced at the procedure boundary
var (
	ErrAgentNotFound = &AppError{
		Message: "agent not found",
		Code:    404, // StatusNotFound
	}
	ErrMeetingNotFound = &AppError{
		Message: "meeting not found",
		Code:    404, // StatusNotFound
	}
	ErrUserNotFound = &AppError{
		Message: "user not found",
		Code:    404, // StatusNotFound
	}
	ErrEmailAlreadyExists = &AppError{
		Message: "user with this email already exists",
		Code:    409, // StatusConflict
	}
	ErrInvalidCredentials = &AppError{
		Message: "invalid email or password",
		Code:    401, // StatusUnauthorized
	}
	ErrInvalidID = &AppError{
		Message: "invalid id",
		Code:    400, // StatusBadRequest
	}
	ErrNameRequired = &AppError{
		Message: "name is required",
		Code:    400, // StatusBadRequest
	}
	ErrInstructionsRequired = &AppError{
		Message: "instructions are required",
		Code:    400, // StatusBadRequest
	}
	ErrAgentIDRequired = &AppError{
		Message: "agent id is required",
		Code:    400, // StatusBadRequest
	}
	ErrInvalidMeetingStatus = &AppError{
		Message: "invalid meeting status",
		Code:    400, // StatusBadRequest
	}
)

// Standard error types for repositories
var (
	ErrNotFound = errors.New("not found")
)
