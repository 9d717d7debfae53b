package query

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 1000
)

// Page is a 1-indexed pagination window. Use NewPage or ParsePage to get a
// clamped value.
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps number and limit into range: 1 <= limit <= MaxLimit and
// 1 <= page <= math.MaxInt/limit, so Offset never overflows.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxNumber := math.MaxInt / limit; number > maxNumber {
		number = maxNumber
	}
	return Page{Number: number, Limit: limit}
}

// ParsePage reads raw query values. Missing or non-numeric values fall back to
// the defaults, out-of-range values are clamped.
func ParsePage(page, limit string) Page {
	return NewPage(parseIntOr(page, DefaultPage), parseIntOr(limit, DefaultLimit))
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func (p Page) TotalPages(total int) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

func parseIntOr(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
