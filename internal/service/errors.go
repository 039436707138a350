package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gito/internal/db"
	"github.com/gito/internal/prayer"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUserInput   = errors.New("invalid user input")

	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("task title is required")
	ErrInvalidBlock  = errors.New("invalid prayer block")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidTime   = errors.New("invalid time of day")
	ErrInvalidColor  = errors.New("invalid colour")
	ErrInvalidPrayer = errors.New("invalid prayer")
	ErrInvalidRange  = errors.New("invalid date range")
	ErrInvalidMonth  = errors.New("invalid month")
)

// parseDate validates a YYYY-MM-DD string and returns it normalised.
func parseDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	t, err := time.Parse(db.DateLayout, trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t.Format(db.DateLayout), nil
}

// parseOptionalClock validates an optional HH:MM value.
func parseOptionalClock(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	c, err := prayer.ParseClock(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return c.String(), nil
}
