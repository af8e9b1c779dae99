package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendly/internal/attendance"
	"attendly/internal/auth"
	"attendly/internal/leave"
	"attendly/internal/principal"
	"attendly/internal/storage"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterUser creates a user and returns a fresh token with the profile.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	u, err := principal.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		serverError(c, err)
		return
	}
	u, err = h.users.CreateUser(c.Request.Context(), u)
	if err != nil {
		if errors.Is(err, principal.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		serverError(c, err)
		return
	}

	token, _, err := auth.Issue(u.ID, auth.KindUser, h.issuer, h.signingKey, h.userTokenTTL)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser checks credentials and returns a token with the profile.
func (h *Handler) LoginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	u, err := h.users.UserByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, principal.ErrNotFound) {
		serverError(c, err)
		return
	}
	if err != nil || !auth.CheckPassword(req.Password, u.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, _, err := auth.Issue(u.ID, auth.KindUser, h.issuer, h.signingKey, h.userTokenTTL)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"role":           u.Role,
		"profilePicture": u.ProfilePicture,
		"token":          token,
	})
}

// MarkAttendance records the authenticated user as present today. A second
// call on the same calendar day fails.
func (h *Handler) MarkAttendance(c *gin.Context) {
	rec, err := h.att.MarkToday(c.Request.Context(), principalID(c))
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyMarked) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Attendance already marked today"})
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance marked successfully", "attendance": rec})
}

// ViewAttendance lists the authenticated user's attendance in insertion
// order.
func (h *Handler) ViewAttendance(c *gin.Context) {
	records, err := h.att.History(c.Request.Context(), principalID(c))
	if err != nil {
		serverError(c, err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, records)
}

// UploadProfilePicture stores a multipart image (field profilePicture,
// jpeg/jpg/png, max size from config) and records the resulting path.
func (h *Handler) UploadProfilePicture(c *gin.Context) {
	file, header, err := c.Request.FormFile("profilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "profilePicture file is required"})
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large (max 5 MB)"})
		return
	}
	if !storage.AllowedImage(header.Filename, header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files (jpeg, jpg, png) are allowed"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		serverError(c, err)
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large (max 5 MB)"})
		return
	}

	path, err := h.files.Save(storage.Filename(header.Filename), data)
	if err != nil {
		serverError(c, err)
		return
	}
	if err := h.users.SetProfilePicture(c.Request.Context(), principalID(c), path); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Profile picture uploaded successfully",
		"profilePicture": path,
	})
}

type editPictureRequest struct {
	ProfilePicture string `json:"profilePicture" binding:"required"`
}

// EditProfilePicture sets the picture path directly from the body. This
// path intentionally skips file validation; only the upload route checks
// the actual bytes.
func (h *Handler) EditProfilePicture(c *gin.Context) {
	var req editPictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := h.users.SetProfilePicture(c.Request.Context(), principalID(c), req.ProfilePicture); err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated successfully"})
}

type leaveRequestBody struct {
	Reason    string `json:"reason" binding:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SendLeaveRequest files a pending leave request for the authenticated
// user. The date range is optional.
func (h *Handler) SendLeaveRequest(c *gin.Context) {
	var req leaveRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var start, end *time.Time
	if req.StartDate != "" {
		t, err := attendance.ParseDay(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
			return
		}
		start = &t
	}
	if req.EndDate != "" {
		t, err := attendance.ParseDay(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
			return
		}
		end = &t
	}

	lr, err := h.leaves.Submit(c.Request.Context(), principalID(c), req.Reason, start, end)
	if err != nil {
		if errors.Is(err, leave.ErrBadRange) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "End date must not be before start date"})
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Leave request sent successfully", "leaveRequest": lr})
}
