package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials    = errors.New("no credentials configured, use 'twilly login' to add a profile")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrNoProfiles       = errors.New("no profiles configured")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidIndex        = errors.New("invalid list item index")
	ErrNothingToUpdate     = errors.New("no fields to update were given")
)

// Required field errors.
var (
	ErrServiceRequired     = errors.New("--service flag is required")
	ErrMapRequired         = errors.New("--map flag is required")
	ErrListRequired        = errors.New("--list flag is required")
	ErrEnvironmentRequired = errors.New("--environment flag is required")
	ErrDataRequired        = errors.New("--data flag is required")
)
