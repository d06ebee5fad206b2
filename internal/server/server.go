package server

import (
	"context"
	"net/http"

	"courtslot/internal/auth"
	"courtslot/internal/config"
	"courtslot/internal/court"
	"courtslot/internal/email"
	"courtslot/internal/extra"
	"courtslot/internal/payment"
	"courtslot/internal/report"
	"courtslot/internal/reservation"
	"courtslot/internal/slot"
	"courtslot/internal/tournament"
	"courtslot/internal/user"

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
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, cfg.JWTSecret)
	userHandler := user.NewHandler(userService)

	courtRepo := court.NewRepository(db)
	courtService := court.NewService(courtRepo)
	courtHandler := court.NewHandler(courtService)

	extraRepo := extra.NewRepository(db)
	extraHandler := extra.NewHandler(extraRepo)

	reservationStore := reservation.NewStore(db)
	paymentRepo := payment.NewRepository(db)

	slotRepo := slot.NewRepository(db)
	slotService := slot.NewService(slotRepo, courtService, reservationStore)
	slotHandler := slot.NewHandler(slotService)

	coordinator := reservation.NewCoordinator(
		db, reservationStore, slotRepo, courtService, extraRepo, userService, paymentRepo, emailService)
	reservationHandler := reservation.NewHandler(coordinator)

	tournamentRepo := tournament.NewRepository(db)
	tournamentService := tournament.NewService(tournamentRepo, coordinator, slotRepo)
	tournamentHandler := tournament.NewHandler(tournamentService)

	paymentService := payment.NewService(paymentRepo, coordinator, userService, emailService)
	paymentHandler := payment.NewHandler(paymentService)

	reportRepo := report.NewRepository(db)
	reportHandler := report.NewHandler(reportRepo)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/courts", courtHandler.ListCourts)
		protected.GET("/courts/:courtID", courtHandler.GetCourt)
		protected.GET("/courts/:courtID/slots", slotHandler.ListCourtSlots)
		protected.GET("/slots/available", slotHandler.FindAvailableSlots)

		protected.GET("/extras", extraHandler.ListExtraServices)
		protected.GET("/extras/:extraID", extraHandler.GetExtraService)
		protected.POST("/extras", extraHandler.CreateExtraService)

		protected.POST("/reservations", reservationHandler.CreateReservation)
		protected.GET("/reservations/:reservationID", reservationHandler.GetReservation)
		protected.PUT("/reservations/:reservationID", reservationHandler.ModifyReservation)
		protected.POST("/reservations/:reservationID/cancel", reservationHandler.CancelReservation)
		protected.GET("/users/me/reservations", reservationHandler.ListMyReservations)

		protected.POST("/reservations/:reservationID/payments", paymentHandler.ProcessPayment)
		protected.GET("/reservations/:reservationID/payments", paymentHandler.ListReservationPayments)
		protected.GET("/payments/:paymentID", paymentHandler.GetPayment)

		protected.POST("/tournaments", tournamentHandler.CreateTournament)
		protected.GET("/tournaments", tournamentHandler.ListTournaments)
		protected.GET("/tournaments/:tournamentID", tournamentHandler.GetTournament)
		protected.PUT("/tournaments/:tournamentID", tournamentHandler.UpdateTournament)
		protected.POST("/tournaments/:tournamentID/reservations/batch", tournamentHandler.ReserveBatch)
		protected.POST("/tournaments/:tournamentID/cancel", tournamentHandler.CancelTournament)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/courts", courtHandler.CreateCourt)
		admin.PUT("/courts/:courtID", courtHandler.UpdateCourt)
		admin.DELETE("/courts/:courtID", courtHandler.DeleteCourt)

		admin.POST("/courts/:courtID/slots", slotHandler.CreateSlot)
		admin.PUT("/slots/:slotID", slotHandler.UpdateSlot)
		admin.DELETE("/slots/:slotID", slotHandler.DeleteSlot)
		admin.POST("/slots/:slotID/cancel", slotHandler.CancelSlot)

		admin.GET("/reservations", reservationHandler.ListReservations)
		admin.POST("/reservations/:reservationID/confirm", reservationHandler.ConfirmReservation)
		admin.POST("/users/:userID/reservations/walkin", reservationHandler.CreateWalkInReservation)

		admin.GET("/reports/courts", reportHandler.CourtUsage)
		admin.GET("/reports/utilization", reportHandler.MonthlyUtilization)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

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

func (s *Server) Router() *gin.Engine {
	return s.router
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
