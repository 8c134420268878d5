package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kindaboxs/meetboxs/pkg/api"
	"github.com/kindaboxs/meetboxs/pkg/jwt"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

type Router struct {
	AgentHandler   *AgentHandler
	MeetingHandler *MeetingHandler
	AuthHandler    *AuthHandler
	HealthHandler  *HealthHandler
	JWTClient      jwt.JWTClient
	AppLogger      logger.LoggerInterface
}

func NewRouter(agentHandler *AgentHandler, meetingHandler *MeetingHandler, authHandler *AuthHandler, healthHandler *HealthHandler, jwtClient jwt.JWTClient, appLogger logger.LoggerInterface) *Router {
	return &Router{
		AgentHandler:   agentHandler,
		MeetingHandler: meetingHandler,
		AuthHandler:    authHandler,
		HealthHandler:  healthHandler,
		JWTClient:      jwtClient,
		AppLogger:      appLogger,
	}
}

func (r *Router) SetupRoutes() http.Handler {
	router := chi.NewRouter()

	// Add middleware
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.Heartbeat("/ping"))
	router.Use(LoggingMiddleware(r.AppLogger))

	// Health check endpoint
	router.Get("/health", r.HealthHandler.HealthCheckHandler)

	apiClient := api.New()
	authn := JWTMiddleware(r.JWTClient, r.AppLogger, apiClient)

	router.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes
		v1.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", r.AuthHandler.RegisterHandler)
			auth.Post("/login", r.AuthHandler.LoginHandler)
			auth.Post("/refresh", r.AuthHandler.RefreshHandler)
			// Protected auth routes
			auth.With(authn).Get("/profile", r.AuthHandler.ProfileHandler)
		})
		// Agent routes, all owner-scoped
		v1.Route("/agents", func(agents chi.Router) {
			agents.Use(authn)
			agents.Post("/", r.AgentHandler.CreateHandler)
			agents.Get("/", r.AgentHandler.ListHandler)
			agents.Get("/{id}", r.AgentHandler.GetByIDHandler)
			agents.Put("/{id}", r.AgentHandler.UpdateHandler)
			agents.Delete("/{id}", r.AgentHandler.DeleteHandler)
		})
		// Meeting routes, all owner-scoped
		v1.Route("/meetings", func(meetings chi.Router) {
			meetings.Use(authn)
			meetings.Post("/", r.MeetingHandler.CreateHandler)
			meetings.Get("/", r.MeetingHandler.ListHandler)
			meetings.Get("/{id}", r.MeetingHandler.GetByIDHandler)
			meetings.Put("/{id}", r.MeetingHandler.UpdateHandler)
			meetings.Delete("/{id}", r.MeetingHandler.DeleteHandler)
		})
	})
	return router
}
