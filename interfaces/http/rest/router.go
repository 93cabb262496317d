package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"reunion-backend/application/services"
	"reunion-backend/infrastructure/config"
	"reunion-backend/interfaces/http/rest/handlers"
	"reunion-backend/interfaces/http/rest/middleware"
	"reunion-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg         *config.Config
	logger      *zap.Logger
	validator   *auth.JWTValidator
	sessions    *services.SessionService
	submissions *services.SubmissionService
	reactions   *services.ReactionService
	memories    *services.MemoryService
	invites     *services.InviteService
	workspaces  *services.WorkspaceService
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	validator *auth.JWTValidator,
	sessions *services.SessionService,
	submissions *services.SubmissionService,
	reactions *services.ReactionService,
	memories *services.MemoryService,
	invites *services.InviteService,
	workspaces *services.WorkspaceService,
) *Router {
	return &Router{
		cfg:         cfg,
		logger:      logger,
		validator:   validator,
		sessions:    sessions,
		submissions: submissions,
		reactions:   reactions,
		memories:    memories,
		invites:     invites,
		workspaces:  workspaces,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.reunion-archive.org"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	authHandler := handlers.NewAuthHandler(rt.sessions, rt.logger)
	memoryHandler := handlers.NewMemoryHandler(rt.submissions, rt.memories, rt.logger)
	reactionHandler := handlers.NewReactionHandler(rt.reactions, rt.logger)
	inviteHandler := handlers.NewInviteHandler(rt.invites, rt.workspaces, rt.logger)
	workspaceHandler := handlers.NewWorkspaceHandler(rt.workspaces, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Public session endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/signin", authHandler.SignIn)
			r.Post("/password-reset", authHandler.PasswordReset)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(rt.validator, rt.logger))
				r.Post("/signout", authHandler.SignOut)
			})
		})

		// Public browsing endpoints
		r.Get("/memories", memoryHandler.ListByDecade)
		r.Get("/memories/{memoryID}", memoryHandler.Get)
		r.Get("/memories/{memoryID}/comments", memoryHandler.ListComments)
		r.Get("/decades", memoryHandler.DecadeCounts)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator, rt.logger))

			r.Post("/memories", memoryHandler.Submit)
			r.Post("/memories/{memoryID}/comments", memoryHandler.AddComment)
			r.Post("/memories/{memoryID}/reactions", reactionHandler.Toggle)

			r.Route("/invites", func(r chi.Router) {
				r.Get("/", inviteHandler.ListPending)
				r.Post("/send", inviteHandler.Send)
			})

			r.Route("/workspace", func(r chi.Router) {
				r.Get("/", workspaceHandler.Get)
				r.Put("/view", workspaceHandler.SetView)
				r.Put("/decade", workspaceHandler.SetDecade)
				r.Put("/contribution", workspaceHandler.SetContribution)
				r.Post("/invites", workspaceHandler.StageInvite)
				r.Delete("/invites", workspaceHandler.UnstageInvite)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
