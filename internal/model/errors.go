package model

import "errors"

// Common errors used across the application
var (
	// Board construction errors
	ErrInvalidDimensions      = errors.New("invalid board dimensions")
	ErrOddCellCount           = errors.New("board cell count must be even")
	ErrPatternTypesOutOfRange = errors.New("pattern type count out of range")

	// Session state errors
	ErrAlreadyPlaying  = errors.New("game is already playing")
	ErrNotPlaying      = errors.New("game has not started")
	ErrSettingsLocked  = errors.New("cannot change settings during a game")
	ErrSessionNotFound = errors.New("session not found")

	// Storage errors
	ErrSettingsNotFound = errors.New("settings not found")
)
