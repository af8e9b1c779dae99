package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"attendly/internal/attendance"
	"attendly/internal/auth"
	"attendly/internal/config"
	"attendly/internal/handler"
	"attendly/internal/httpmiddleware"
	"attendly/internal/leave"
	"attendly/internal/principal"
	"attendly/internal/report"
	"attendly/internal/storage"
	"attendly/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	principals := principal.NewRepository(db.Client)
	attRepo := attendance.NewRepository(db.Client)
	att := attendance.NewService(attRepo)
	leaves := leave.NewService(leave.NewRepository(db.Client))
	reports := report.NewService(principals, att)

	// Profile picture storage: Cloudinary when configured, local disk
	// otherwise.
	var files storage.Store
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		files = storage.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		log.Println("Cloudinary storage configured:", cfg.CloudinaryCloudName)
	} else {
		disk, err := storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			return err
		}
		files = disk
		log.Println("Disk storage configured:", cfg.UploadDir)
	}

	h := handler.New(handler.Options{
		Users:          principals,
		Admins:         principals,
		Attendance:     att,
		Leaves:         leaves,
		Reports:        reports,
		Files:          files,
		SigningKey:     cfg.JWTSigningKey,
		Issuer:         cfg.JWTIssuer,
		UserTokenTTL:   cfg.UserTokenTTL,
		AdminTokenTTL:  cfg.AdminTokenTTL,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.Metrics())

	var limiter httpmiddleware.Limiter
	if cfg.RateLimitBackend == "redis" {
		limiter = httpmiddleware.NewRedisFixedWindow(redisClient.Client, cfg.RateLimitPerMin)
	} else {
		limiter = httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	}
	r.Use(httpmiddleware.RateLimit(limiter))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Client.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	requireUser := auth.RequireUser(cfg.JWTSigningKey, cfg.JWTIssuer, func(ctx context.Context, id string) (any, error) {
		return principals.UserByID(ctx, id)
	})
	requireAdmin := auth.RequireAdmin(cfg.JWTSigningKey, cfg.JWTIssuer, func(ctx context.Context, id string) (any, error) {
		return principals.AdminByID(ctx, id)
	})

	users := r.Group("/users")
	{
		users.POST("/register", h.RegisterUser)
		users.POST("/login", h.LoginUser)

		users.POST("/attendance", requireUser, h.MarkAttendance)
		users.GET("/attendance", requireUser, h.ViewAttendance)
		users.POST("/upload-profile-picture", requireUser, h.UploadProfilePicture)
		users.PUT("/profile-picture", requireUser, h.EditProfilePicture)
		users.POST("/leave-request", requireUser, h.SendLeaveRequest)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/login", h.LoginAdmin)

		admin.GET("/users", requireAdmin, h.ListUsers)
		admin.POST("/attendance", requireAdmin, h.CreateAttendance)
		admin.PUT("/attendance/:id", requireAdmin, h.UpdateAttendance)
		admin.DELETE("/attendance/:id", requireAdmin, h.DeleteAttendance)
		admin.GET("/leaves", requireAdmin, h.ListLeaves)
		admin.PUT("/leaves/:id/approve", requireAdmin, h.ApproveLeave)
		admin.PUT("/leaves/:id/reject", requireAdmin, h.RejectLeave)
		admin.GET("/user-report", requireAdmin, h.UserReport)
		admin.GET("/system-report", requireAdmin, h.SystemReport)
	}

	// Uploaded pictures are public when stored on disk.
	if disk, ok := files.(*storage.DiskStore); ok {
		r.Static("/uploads", disk.Dir)
	}

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
