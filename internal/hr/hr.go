// Package hr holds the date, time and salary arithmetic behind attendance,
// leave and payroll records.
package hr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dicel-erp/internal/money"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = time.DateOnly
	TimeLayout = time.TimeOnly

	StandardWorkday = 8 * time.Hour

	AllowancePercent = 10
	DeductionPercent = 15
)

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime  = errors.New("invalid time, expected HH:MM or HH:MM:SS")
	ErrDateRange    = errors.New("end date must not be before start date")
	ErrTimeSequence = errors.New("check-out time must be after check-in time")
)

// ParseDate accepts a calendar date or an RFC 3339 timestamp and keeps the
// date part.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(DateLayout, raw); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

func ParseClock(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{TimeLayout, "15:04"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}

// NormalizeClock renders any accepted clock value as HH:MM:SS.
func NormalizeClock(raw string) (string, error) {
	parsed, err := ParseClock(raw)
	if err != nil {
		return "", err
	}
	return parsed.Format(TimeLayout), nil
}

// LeaveDays counts calendar days between start and end, both inclusive.
func LeaveDays(start, end string) (int, error) {
	from, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	if to.Before(from) {
		return 0, ErrDateRange
	}
	return int(to.Sub(from).Hours()/24) + 1, nil
}

// FormatDuration renders d as "<H>h <M>m", truncating seconds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Minute)
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// WorkedHours returns the formatted total between two clock times and, when
// the total exceeds a standard workday, the formatted overtime.
func WorkedHours(checkIn, checkOut string) (string, *string, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return "", nil, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return "", nil, err
	}
	if !out.After(in) {
		return "", nil, ErrTimeSequence
	}
	worked := out.Sub(in)
	total := FormatDuration(worked)
	if worked <= StandardWorkday {
		return total, nil, nil
	}
	overtime := FormatDuration(worked - StandardWorkday)
	return total, &overtime, nil
}

type PayrollAmounts struct {
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	NetSalary   decimal.Decimal
}

// ComputePayroll applies the fixed allowance and deduction rates to basic.
func ComputePayroll(basic decimal.Decimal) PayrollAmounts {
	allowances := money.Percent(basic, AllowancePercent)
	deductions := money.Percent(basic, DeductionPercent)
	return PayrollAmounts{
		BasicSalary: basic.Round(money.Scale),
		Allowances:  allowances,
		Deductions:  deductions,
		NetSalary:   basic.Add(allowances).Sub(deductions).Round(money.Scale),
	}
}
