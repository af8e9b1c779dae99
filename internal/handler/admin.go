package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendly/internal/attendance"
	"attendly/internal/auth"
	"attendly/internal/leave"
	"attendly/internal/principal"
	"attendly/internal/report"
)

// LoginAdmin checks admin credentials and returns a token. Admin tokens
// carry a shorter TTL than user tokens.
func (h *Handler) LoginAdmin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	a, err := h.admins.AdminByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, principal.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Admin not found"})
			return
		}
		serverError(c, err)
		return
	}
	if !auth.CheckPassword(req.Password, a.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, _, err := auth.Issue(a.ID, auth.KindAdmin, h.issuer, h.signingKey, h.adminTokenTTL)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    a.ID,
		"name":  a.Name,
		"email": a.Email,
		"role":  a.Role,
		"token": token,
	})
}

// ListUsers returns every registered user, password hashes excluded.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	if users == nil {
		users = []principal.User{}
	}
	c.JSON(http.StatusOK, users)
}

type createAttendanceRequest struct {
	UserID string `json:"userId" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// CreateAttendance records attendance for any user and date.
func (h *Handler) CreateAttendance(c *gin.Context) {
	var req createAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	day, err := attendance.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
		return
	}

	rec, err := h.att.Create(c.Request.Context(), req.UserID, day, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrDuplicate):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Attendance already marked for this date"})
		case errors.Is(err, attendance.ErrBadStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Status must be Present or Absent"})
		default:
			serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Attendance added", "attendance": rec})
}

type updateAttendanceRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAttendance replaces the status of an existing record.
func (h *Handler) UpdateAttendance(c *gin.Context) {
	var req updateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	err := h.att.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Attendance not found"})
		case errors.Is(err, attendance.ErrBadStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Status must be Present or Absent"})
		default:
			serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance updated"})
}

// DeleteAttendance removes a record permanently.
func (h *Handler) DeleteAttendance(c *gin.Context) {
	if err := h.att.Remove(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, attendance.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Attendance not found"})
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance deleted"})
}

// ListLeaves returns all leave requests with requester details resolved.
func (h *Handler) ListLeaves(c *gin.Context) {
	requests, err := h.leaves.List(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	if requests == nil {
		requests = []leave.Request{}
	}
	c.JSON(http.StatusOK, requests)
}

// ApproveLeave moves a pending request to Approved.
func (h *Handler) ApproveLeave(c *gin.Context) {
	h.decideLeave(c, leave.StatusApproved)
}

// RejectLeave moves a pending request to Rejected.
func (h *Handler) RejectLeave(c *gin.Context) {
	h.decideLeave(c, leave.StatusRejected)
}

func (h *Handler) decideLeave(c *gin.Context, status string) {
	var (
		lr  leave.Request
		err error
	)
	if status == leave.StatusApproved {
		lr, err = h.leaves.Approve(c.Request.Context(), c.Param("id"))
	} else {
		lr, err = h.leaves.Reject(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Leave request not found"})
		case errors.Is(err, leave.ErrDecided):
			c.JSON(http.StatusConflict, gin.H{"message": "Leave request already decided"})
		default:
			serverError(c, err)
		}
		return
	}

	msg := "Leave approved"
	if status == leave.StatusRejected {
		msg = "Leave rejected"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "leaveRequest": lr})
}

// UserReport returns one user's attendance over an inclusive date range.
func (h *Handler) UserReport(c *gin.Context) {
	email := c.Query("email")
	fromDate := c.Query("fromDate")
	toDate := c.Query("toDate")
	if email == "" || fromDate == "" || toDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required parameters"})
		return
	}

	records, err := h.reports.ForUser(c.Request.Context(), email, fromDate, toDate)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrBadDate):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
		case errors.Is(err, report.ErrUnknownUser), errors.Is(err, report.ErrNoRecords):
			c.JSON(http.StatusNotFound, gin.H{"message": "No attendance records found"})
		default:
			serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}

// SystemReport returns all users' attendance over an inclusive date range.
func (h *Handler) SystemReport(c *gin.Context) {
	fromDate := c.Query("fromDate")
	toDate := c.Query("toDate")
	if fromDate == "" || toDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Both 'fromDate' and 'toDate' are required."})
		return
	}

	records, err := h.reports.SystemWide(c.Request.Context(), fromDate, toDate)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrBadDate):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
		case errors.Is(err, report.ErrNoRecords):
			c.JSON(http.StatusNotFound, gin.H{"message": "No attendance records found for the given dates."})
		default:
			serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendance report generated successfully.",
		"attendance": records,
	})
}
