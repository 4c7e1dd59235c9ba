package devapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"leaveboard/internal/domain"
)

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		LeaveType    string `json:"leave_type"`
		StartDate    string `json:"start_date"`
		EndDate      string `json:"end_date"`
		Reason       string `json:"reason"`
		ManagerEmail string `json:"manager_email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.LeaveType == "" || req.StartDate == "" || req.EndDate == "" {
		writeError(w, http.StatusBadRequest, "leave_type, start_date and end_date are required")
		return
	}

	days := domain.InclusiveDays(req.StartDate, req.EndDate)
	if days == 0 {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	manager, err := s.userBy("email", req.ManagerEmail)
	if err != nil {
		writeError(w, http.StatusNotFound, "Manager not found")
		return
	}

	res, err := s.db.Exec(
		`INSERT INTO leave_requests (employee_id, manager_id, leave_type, start_date, end_date, days, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, manager.ID, req.LeaveType, req.StartDate, req.EndDate, days, req.Reason,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	id, _ := res.LastInsertId()
	writeJSON(w, http.StatusOK, map[string]string{
		"leave_request_id": strconv.FormatInt(id, 10),
		"status":           domain.StatusPending,
	})
}

const leaveColumns = `
	l.id, l.leave_type, l.start_date, l.end_date, l.days, l.reason, l.status,
	l.comments, l.action_timestamp, l.created_at,
	e.full_name, e.email, e.department,
	COALESCE(a.full_name, '')`

func (s *Server) queryLeaves(where string, args ...any) ([]domain.LeaveRequest, error) {
	rows, err := s.db.Query(
		`SELECT `+leaveColumns+`
		 FROM leave_requests l
		 JOIN users e ON e.id = l.employee_id
		 LEFT JOIN users a ON a.id = l.approver_id
		 WHERE `+where+`
		 ORDER BY l.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.LeaveRequest{}
	for rows.Next() {
		var (
			id              int64
			lr              domain.LeaveRequest
			actionTimestamp *string
		)
		if err := rows.Scan(
			&id, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Days, &lr.Reason, &lr.Status,
			&lr.Comments, &actionTimestamp, &lr.SubmittedAt,
			&lr.EmployeeName, &lr.EmployeeEmail, &lr.Department,
			&lr.ApprovedBy,
		); err != nil {
			return nil, err
		}
		lr.AltID = strconv.FormatInt(id, 10)
		if actionTimestamp != nil {
			lr.ActionTimestamp = *actionTimestamp
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

func (s *Server) writeLeaves(w http.ResponseWriter, where string, args ...any) {
	leaves, err := s.queryLeaves(where, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, leaves)
}

func (s *Server) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	s.writeLeaves(w, `l.employee_id = ?`, u.ID)
}

func (s *Server) handlePendingApprovals(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireManager(w, r)
	if !ok {
		return
	}
	s.writeLeaves(w, `l.manager_id = ? AND l.status = ?`, u.ID, domain.StatusPending)
}

func (s *Server) handleProcessedApprovals(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireManager(w, r)
	if !ok {
		return
	}
	s.writeLeaves(w, `l.manager_id = ? AND l.status != ?`, u.ID, domain.StatusPending)
}

func (s *Server) requireManager(w http.ResponseWriter, r *http.Request) (*userRow, bool) {
	u, ok := s.currentUser(w, r)
	if !ok {
		return nil, false
	}
	if !u.IsManager {
		writeError(w, http.StatusForbidden, "Access denied. Manager role required.")
		return nil, false
	}
	return u, true
}

// handleDecision resolves an approve or reject action. Only pending
// requests owned by the calling manager can transition, and only
// forward.
func (s *Server) handleDecision(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireManager(w, r)
		if !ok {
			return
		}

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid leave id")
			return
		}

		var req struct {
			Comments string `json:"comments"`
		}
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&req)
		}

		res, err := s.db.Exec(
			`UPDATE leave_requests
			 SET status = ?, comments = ?, approver_id = ?, action_timestamp = ?
			 WHERE id = ? AND manager_id = ? AND status = ?`,
			status, req.Comments, u.ID, time.Now().UTC().Format(time.RFC3339), id, u.ID, domain.StatusPending,
		)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			writeError(w, http.StatusNotFound, "Pending leave request not found")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"leave_request_id": strconv.FormatInt(id, 10),
			"status":           status,
		})
	}
}
