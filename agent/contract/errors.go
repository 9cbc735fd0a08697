package contract

import "errors"

var (
	ErrParseFailure       = errors.New("model output could not be parsed")
	ErrToolNotFound       = errors.New("tool not found")
	ErrToolValidation     = errors.New("tool arguments failed validation")
	ErrToolExecution      = errors.New("tool execution failed")
	ErrProvidersExhausted = errors.New("all model providers exhausted")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid order transition")
	ErrValidation         = errors.New("validation failed")
)
