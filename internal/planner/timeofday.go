package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTime turns a user supplied time of day into zero-padded "HH:MM".
// Accepted forms are H:M, H:MM, HH:MM and HH:MM:SS (seconds are dropped).
// Lexicographic order of normalized values equals chronological order.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrTimeRequired
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", ErrInvalidTime
	}

	hour, err := parseClockField(parts[0], 23)
	if err != nil {
		return "", err
	}
	minute, err := parseClockField(parts[1], 59)
	if err != nil {
		return "", err
	}
	if len(parts) == 3 {
		if _, err := parseClockField(parts[2], 59); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

func parseClockField(s string, limit int) (int, error) {
	if len(s) == 0 || len(s) > 2 || strings.Trim(s, "0123456789") != "" {
		return 0, ErrInvalidTime
	}
	v, err := strconv.Atoi(s)
	if err != nil || v > limit {
		return 0, ErrInvalidTime
	}
	return v, nil
}
