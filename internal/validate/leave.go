// Package validate holds the client-side leave-form validation. It runs
// fully before any network call and reports every violated field at
// once rather than stopping at the first.
package validate

import (
	"regexp"
	"time"
	"unicode/utf8"

	"leaveboard/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LeaveForm carries the raw form input. Dates use the wire layout.
type LeaveForm struct {
	LeaveType        string
	StartDate        string
	EndDate          string
	Reason           string
	ManagerEmail     string
	EmergencyContact string
	EmergencyPhone   string
}

// LeaveRequest validates a leave form against today's local date and
// returns per-field messages, keyed by form field name. An empty map
// means the form is valid.
func LeaveRequest(f LeaveForm, today time.Time) map[string]string {
	errs := map[string]string{}

	if f.LeaveType == "" {
		errs["leaveType"] = "Please select a leave type"
	}

	// Dates are compared in today's zone; parsing them as UTC would
	// reject today's date for any client west of UTC.
	if f.StartDate == "" {
		errs["startDate"] = "Start date is required"
	} else if start, err := time.ParseInLocation(domain.DateLayout, f.StartDate, today.Location()); err != nil {
		errs["startDate"] = "Start date is invalid"
	} else if start.Before(midnight(today)) {
		errs["startDate"] = "Start date cannot be in the past"
	}

	if f.EndDate == "" {
		errs["endDate"] = "End date is required"
	} else if end, err := time.ParseInLocation(domain.DateLayout, f.EndDate, today.Location()); err != nil {
		errs["endDate"] = "End date is invalid"
	} else if f.StartDate != "" {
		if start, err := time.ParseInLocation(domain.DateLayout, f.StartDate, today.Location()); err == nil && end.Before(start) {
			errs["endDate"] = "End date cannot be before start date"
		}
	}

	if f.Reason == "" {
		errs["reason"] = "Please provide a reason for your leave request"
	} else if utf8.RuneCountInString(f.Reason) < 10 {
		errs["reason"] = "Reason must be at least 10 characters long"
	}

	if f.ManagerEmail == "" {
		errs["managerEmail"] = "Manager email is required"
	} else if !emailPattern.MatchString(f.ManagerEmail) {
		errs["managerEmail"] = "Please enter a valid email address"
	}

	if f.LeaveType == domain.TypeSick || f.LeaveType == domain.TypePersonal {
		if f.EmergencyContact == "" {
			errs["emergencyContact"] = "Emergency contact is required for this leave type"
		}
		if f.EmergencyPhone == "" {
			errs["emergencyPhone"] = "Emergency phone number is required for this leave type"
		}
	}

	return errs
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
