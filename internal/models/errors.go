package models

import "errors"

var (
	// ErrDataUnavailable marks a dataset that could not be read or lacks a
	// required column. It is fatal for a dashboard request.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInsufficientData is returned by the forecaster when fewer than two
	// distinct years are observed.
	ErrInsufficientData = errors.New("insufficient data")
)
