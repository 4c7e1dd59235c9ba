package validate_test

import (
	"strings"
	"testing"
	"time"

	"leaveboard/internal/validate"
)

var today = time.Date(2026, time.August, 10, 14, 30, 0, 0, time.UTC)

func validForm() validate.LeaveForm {
	return validate.LeaveForm{
		LeaveType:    "annual",
		StartDate:    "2026-08-17",
		EndDate:      "2026-08-21",
		Reason:       "Family holiday abroad",
		ManagerEmail: "manager@example.com",
	}
}

func TestLeaveRequestValid(t *testing.T) {
	if errs := validate.LeaveRequest(validForm(), today); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestLeaveRequestFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*validate.LeaveForm)
		field  string
	}{
		{"missing leave type", func(f *validate.LeaveForm) { f.LeaveType = "" }, "leaveType"},
		{"missing start date", func(f *validate.LeaveForm) { f.StartDate = "" }, "startDate"},
		{"start date in the past", func(f *validate.LeaveForm) { f.StartDate = "2026-08-09" }, "startDate"},
		{"missing end date", func(f *validate.LeaveForm) { f.EndDate = "" }, "endDate"},
		{"end before start", func(f *validate.LeaveForm) { f.StartDate = "2026-08-21"; f.EndDate = "2026-08-17" }, "endDate"},
		{"missing reason", func(f *validate.LeaveForm) { f.Reason = "" }, "reason"},
		{"reason too short", func(f *validate.LeaveForm) { f.Reason = strings.Repeat("x", 9) }, "reason"},
		{"missing manager email", func(f *validate.LeaveForm) { f.ManagerEmail = "" }, "managerEmail"},
		{"malformed manager email", func(f *validate.LeaveForm) { f.ManagerEmail = "not-an-email" }, "managerEmail"},
		{"email without tld", func(f *validate.LeaveForm) { f.ManagerEmail = "user@host" }, "managerEmail"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			errs := validate.LeaveRequest(f, today)
			if errs[tc.field] == "" {
				t.Errorf("expected error on %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestLeaveRequestReasonBoundary(t *testing.T) {
	f := validForm()
	f.Reason = strings.Repeat("x", 10)
	if errs := validate.LeaveRequest(f, today); errs["reason"] != "" {
		t.Errorf("10-character reason should pass, got %q", errs["reason"])
	}

	f.Reason = strings.Repeat("x", 9)
	if errs := validate.LeaveRequest(f, today); errs["reason"] == "" {
		t.Error("9-character reason should fail")
	}

	// Length is counted in characters, not bytes.
	f.Reason = strings.Repeat("å", 9)
	if errs := validate.LeaveRequest(f, today); errs["reason"] == "" {
		t.Error("9-character multi-byte reason should fail")
	}
	f.Reason = strings.Repeat("å", 10)
	if errs := validate.LeaveRequest(f, today); errs["reason"] != "" {
		t.Errorf("10-character multi-byte reason should pass, got %q", errs["reason"])
	}
}

func TestLeaveRequestStartDateToday(t *testing.T) {
	f := validForm()
	f.StartDate = "2026-08-10"
	if errs := validate.LeaveRequest(f, today); errs["startDate"] != "" {
		t.Errorf("today's date should be allowed, got %q", errs["startDate"])
	}
}

func TestLeaveRequestStartDateTodayAcrossZones(t *testing.T) {
	// Day granularity means today's date is valid no matter how the
	// client's zone relates to UTC.
	zones := []*time.Location{
		time.FixedZone("UTC-5", -5*60*60),
		time.FixedZone("UTC+13", 13*60*60),
		time.UTC,
	}
	for _, zone := range zones {
		now := time.Date(2026, time.August, 30, 10, 0, 0, 0, zone)
		f := validForm()
		f.StartDate = "2026-08-30"
		f.EndDate = "2026-08-30"
		errs := validate.LeaveRequest(f, now)
		if errs["startDate"] != "" {
			t.Errorf("zone %v: today's date must be allowed, got %q", zone, errs["startDate"])
		}
		if errs["endDate"] != "" {
			t.Errorf("zone %v: same-day range must be allowed, got %q", zone, errs["endDate"])
		}
	}
}

func TestLeaveRequestEmergencyFields(t *testing.T) {
	for _, typ := range []string{"sick", "personal"} {
		f := validForm()
		f.LeaveType = typ
		errs := validate.LeaveRequest(f, today)
		if errs["emergencyContact"] == "" || errs["emergencyPhone"] == "" {
			t.Errorf("leave type %q should require emergency fields, got %v", typ, errs)
		}

		f.EmergencyContact = "Jordan Reyes"
		f.EmergencyPhone = "+1 555 0100"
		if errs := validate.LeaveRequest(f, today); len(errs) != 0 {
			t.Errorf("leave type %q with emergency fields should pass, got %v", typ, errs)
		}
	}

	f := validForm()
	f.LeaveType = "annual"
	if errs := validate.LeaveRequest(f, today); len(errs) != 0 {
		t.Errorf("annual leave must not require emergency fields, got %v", errs)
	}
}

func TestLeaveRequestReportsAllFieldsAtOnce(t *testing.T) {
	errs := validate.LeaveRequest(validate.LeaveForm{}, today)
	for _, field := range []string{"leaveType", "startDate", "endDate", "reason", "managerEmail"} {
		if errs[field] == "" {
			t.Errorf("empty form should report %q", field)
		}
	}
}
