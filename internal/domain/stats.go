package domain

import "time"

// AnnualAllowance is the yearly leave budget. The backend does not
// report a per-user allowance, so the client assumes the company-wide
// default.
const AnnualAllowance = 25

// DashboardStats is a pure projection over a leave-request list. It is
// recomputed on every refresh and never cached independently.
type DashboardStats struct {
	TotalLeaveDays    int
	UsedLeaveDays     int
	RemainingDays     int
	PendingRequests   int
	ApprovedThisMonth int
	RejectedThisMonth int
}

// ComputeStats reduces a leave-request list into dashboard counters
// relative to ref. Used days and pending counts consider requests
// starting in ref's calendar year; the this-month counters consider
// decisions stamped in ref's calendar month.
func ComputeStats(requests []LeaveRequest, ref time.Time) DashboardStats {
	stats := DashboardStats{TotalLeaveDays: AnnualAllowance}

	for i := range requests {
		r := &requests[i]

		start := ParseWhen(r.StartDate)
		if !start.IsZero() && start.Year() == ref.Year() {
			switch r.Status {
			case StatusApproved:
				stats.UsedLeaveDays += r.DayCount()
			case StatusPending:
				stats.PendingRequests++
			}
		}

		acted := ParseWhen(r.ActionTimestamp)
		if acted.IsZero() || acted.Year() != ref.Year() || acted.Month() != ref.Month() {
			continue
		}
		switch r.Status {
		case StatusApproved:
			stats.ApprovedThisMonth++
		case StatusRejected:
			stats.RejectedThisMonth++
		}
	}

	stats.RemainingDays = stats.TotalLeaveDays - stats.UsedLeaveDays
	if stats.RemainingDays < 0 {
		stats.RemainingDays = 0
	}
	return stats
}
