package server

import (
	"context"
	"net/http"

	"fitclub/internal/admin"
	"fitclub/internal/auth"
	"fitclub/internal/class"
	"fitclub/internal/config"
	"fitclub/internal/email"
	"fitclub/internal/member"
	"fitclub/internal/room"
	"fitclub/internal/session"
	"fitclub/internal/trainer"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	memberSvc := member.NewService(member.NewRepository(db))
	trainerSvc := trainer.NewService(trainer.NewRepository(db))
	adminSvc := admin.NewService(admin.NewRepository(db))
	roomSvc := room.NewService(room.NewRepository(db))
	classSvc := class.NewService(class.NewRepository(db), roomSvc, trainerSvc, memberSvc, emailService)
	sessionSvc := session.NewService(session.NewRepository(db), memberSvc, trainerSvc, roomSvc, emailService)

	memberHandler := member.NewHandler(memberSvc, cfg.JWTSecret)
	trainerHandler := trainer.NewHandler(trainerSvc, cfg.JWTSecret)
	adminHandler := admin.NewHandler(adminSvc, cfg.JWTSecret)
	roomHandler := room.NewHandler(roomSvc)
	classHandler := class.NewHandler(classSvc)
	sessionHandler := session.NewHandler(sessionSvc)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/member/register", memberHandler.Register)
		authRoutes.POST("/member/login", memberHandler.Login)
		authRoutes.POST("/trainer/register", trainerHandler.Register)
		authRoutes.POST("/trainer/login", trainerHandler.Login)
		authRoutes.POST("/admin/register", adminHandler.Register)
		authRoutes.POST("/admin/login", adminHandler.Login)
		authRoutes.POST("/refresh", RefreshToken(cfg.JWTSecret))
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/rooms", roomHandler.ListRooms)
		protected.GET("/trainers", trainerHandler.ListTrainers)
		protected.GET("/trainers/:trainerID/availability", trainerHandler.ListAvailability)
		protected.GET("/classes", classHandler.ListClasses)
		protected.GET("/classes/available", classHandler.ListAvailable)
	}

	members := router.Group("/")
	members.Use(authMiddleware, auth.RequireRole(auth.RoleMember))
	{
		members.GET("/members/me", memberHandler.GetProfile)
		members.PATCH("/members/me", memberHandler.UpdateProfile)
		members.POST("/members/me/metrics", memberHandler.LogMetric)
		members.GET("/members/me/metrics", memberHandler.HealthHistory)
		members.POST("/members/me/goals", memberHandler.CreateGoal)
		members.GET("/members/me/goals", memberHandler.ActiveGoals)
		members.PATCH("/members/me/goals/:id", memberHandler.UpdateGoal)
		members.GET("/members/me/dashboard", memberHandler.Dashboard)

		members.POST("/classes/:id/register", classHandler.Register)
		members.DELETE("/registrations/:id", classHandler.CancelRegistration)
		members.GET("/members/me/registrations", classHandler.MyRegistrations)

		members.POST("/sessions", sessionHandler.Book)
		members.DELETE("/sessions/:id", sessionHandler.Cancel)
		members.POST("/sessions/:id/reschedule", sessionHandler.Reschedule)
		members.GET("/members/me/sessions", sessionHandler.MySessions)
	}

	trainers := router.Group("/")
	trainers.Use(authMiddleware, auth.RequireRole(auth.RoleTrainer))
	{
		trainers.POST("/trainer/availability", trainerHandler.SetAvailability)
		trainers.DELETE("/trainer/availability/:availabilityID", trainerHandler.DeleteAvailability)
		trainers.GET("/trainer/schedule", trainerHandler.GetSchedule)
		trainers.GET("/trainers/me/sessions", sessionHandler.TrainerSessions)
		trainers.POST("/trainers/me/sessions/:id/complete", sessionHandler.Complete)
	}

	admins := router.Group("/admin")
	admins.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admins.POST("/rooms", roomHandler.CreateRoom)
		admins.POST("/rooms/:roomID/bookings", roomHandler.BookRoom)
		admins.GET("/rooms/:roomID/bookings", roomHandler.ListBookings)
		admins.POST("/bookings/:bookingID/cancel", roomHandler.CancelBooking)

		admins.POST("/classes", classHandler.CreateClass)
		admins.PATCH("/classes/:id", classHandler.UpdateClass)
		admins.DELETE("/classes/:id", classHandler.CancelClass)
		admins.POST("/registrations/:id/attendance", classHandler.MarkAttendance)

		admins.GET("/members", memberHandler.SearchMembers)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
