// Package domain contains the core entities shared by the browser client
// and the dev backend.
package domain

import "time"

// Leave request statuses as the backend reports them.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Leave types that require an emergency contact on submission.
const (
	TypeAnnual   = "annual"
	TypeSick     = "sick"
	TypePersonal = "personal"
)

// DateLayout is the wire format for leave dates.
const DateLayout = "2006-01-02"

// LeaveRequest is a read-only, possibly stale copy of a backend leave
// request. The backend owns the authoritative state; the client only
// replaces whole lists. Older backend deployments report the identifier
// as "_id", newer ones as "id", so both are tolerated.
type LeaveRequest struct {
	ID               string `json:"_id"`
	AltID            string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	EmployeeName     string `json:"employee_name"`
	EmployeeEmail    string `json:"employee_email"`
	Department       string `json:"employee_department"`
	LeaveType        string `json:"leave_type"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Status           string `json:"status"`
	Days             int    `json:"days"`
	Reason           string `json:"reason"`
	SubmittedAt      string `json:"created_at"`
	ApprovedBy       string `json:"approver_name"`
	ActionTimestamp  string `json:"action_timestamp"`
	Comments         string `json:"comments"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
}

// Key returns whichever identifier the backend populated.
func (r *LeaveRequest) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return r.AltID
}

// DayCount returns the request's day span, recomputing the inclusive
// count from the dates when the backend omitted the days field.
func (r *LeaveRequest) DayCount() int {
	if r.Days > 0 {
		return r.Days
	}
	return InclusiveDays(r.StartDate, r.EndDate)
}

// InclusiveDays counts days between two wire-format dates, both ends
// included. Returns 0 if either date is missing or malformed.
func InclusiveDays(start, end string) int {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return 0
	}
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// ParseWhen parses a backend timestamp, accepting RFC 3339 or a bare
// date. Returns the zero time when the value is empty or malformed.
func ParseWhen(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t
	}
	return time.Time{}
}
