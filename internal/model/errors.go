package model

import "errors"

// Common errors used across the application
var (
	// Match errors
	ErrMatchNotFound = errors.New("match not found")

	// Input errors
	ErrInvalidMode   = errors.New("invalid number of players")
	ErrInvalidSymbol = errors.New("invalid symbol")

	// Board errors
	ErrInvalidCell  = errors.New("invalid board cell")
	ErrCellOccupied = errors.New("cell is already occupied")
)
