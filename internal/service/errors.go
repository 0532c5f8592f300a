package service

import "errors"

// Sentinel errors surfaced to the transport layer. All are caller
// errors; nothing here is retried internally.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidGoalType    = errors.New("invalid goal type")
	ErrInvalidGoalStatus  = errors.New("invalid goal status")
	ErrInvalidTargetDate  = errors.New("target date must be in the future")
	ErrInvalidMealType    = errors.New("invalid meal type")
	ErrInvalidRange       = errors.New("start date must not be after end date")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)
