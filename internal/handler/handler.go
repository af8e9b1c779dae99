package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendly/internal/attendance"
	"attendly/internal/leave"
	"attendly/internal/principal"
	"attendly/internal/report"
	"attendly/internal/storage"
)

// UserStore is the user-principal persistence surface the handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, u principal.User) (principal.User, error)
	UserByEmail(ctx context.Context, email string) (principal.User, error)
	UserByID(ctx context.Context, id string) (principal.User, error)
	SetProfilePicture(ctx context.Context, id, path string) error
	ListUsers(ctx context.Context) ([]principal.User, error)
}

// AdminStore is the admin-principal persistence surface the handlers need.
type AdminStore interface {
	AdminByEmail(ctx context.Context, email string) (principal.Admin, error)
	AdminByID(ctx context.Context, id string) (principal.Admin, error)
}

// Options wires the handler's collaborators and token policy.
type Options struct {
	Users      UserStore
	Admins     AdminStore
	Attendance *attendance.Service
	Leaves     *leave.Service
	Reports    *report.Service
	Files      storage.Store

	SigningKey     string
	Issuer         string
	UserTokenTTL   time.Duration
	AdminTokenTTL  time.Duration
	MaxUploadBytes int64
}

// Handler holds route handlers for the user and admin HTTP surfaces.
type Handler struct {
	users   UserStore
	admins  AdminStore
	att     *attendance.Service
	leaves  *leave.Service
	reports *report.Service
	files   storage.Store

	signingKey     string
	issuer         string
	userTokenTTL   time.Duration
	adminTokenTTL  time.Duration
	maxUploadBytes int64
}

// New creates a handler.
func New(opts Options) *Handler {
	return &Handler{
		users:          opts.Users,
		admins:         opts.Admins,
		att:            opts.Attendance,
		leaves:         opts.Leaves,
		reports:        opts.Reports,
		files:          opts.Files,
		signingKey:     opts.SigningKey,
		issuer:         opts.Issuer,
		userTokenTTL:   opts.UserTokenTTL,
		adminTokenTTL:  opts.AdminTokenTTL,
		maxUploadBytes: opts.MaxUploadBytes,
	}
}

// principalID returns the authenticated principal id set by the token guard.
func principalID(c *gin.Context) string {
	return c.GetString("principalID")
}

// serverError logs the underlying fault and returns the 500 body. The raw
// error text is echoed to the client to match the existing API contract.
func serverError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
}
