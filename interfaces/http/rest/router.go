// Package rest exposes the application services over HTTP for deployments
// that front the backend with a plain API gateway instead of the resolver.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"linkpage-backend/application/services"
	"linkpage-backend/interfaces/http/rest/handlers"
	"linkpage-backend/interfaces/http/rest/middleware"
	"linkpage-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	provisioner *services.Provisioner
	profiles    *services.ProfileService
	pages       *services.PageService
	posts       *services.PostService
	follows     *services.FollowService
	media       *services.MediaService
	validator   *auth.JWTValidator
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	provisioner *services.Provisioner,
	profiles *services.ProfileService,
	pages *services.PageService,
	posts *services.PostService,
	follows *services.FollowService,
	media *services.MediaService,
	validator *auth.JWTValidator,
	logger *zap.Logger,
) *Router {
	return &Router{
		provisioner: provisioner,
		profiles:    profiles,
		pages:       pages,
		posts:       posts,
		follows:     follows,
		media:       media,
		validator:   validator,
		logger:      logger,
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

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.linkpage.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authenticate())

		profileHandler := handlers.NewProfileHandler(rt.provisioner, rt.profiles, rt.logger)
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/me", profileHandler.GetCurrentProfile)
			r.Get("/search", profileHandler.SearchProfiles)
			r.Get("/{subjectID}", profileHandler.GetProfile)
		})

		pageHandler := handlers.NewPageHandler(rt.provisioner, rt.pages, rt.logger)
		r.Route("/pages", func(r chi.Router) {
			r.Get("/me", pageHandler.GetCurrentPage)
			r.Post("/me/components", pageHandler.AddComponent)
			r.Delete("/me/components/{componentID}", pageHandler.RemoveComponent)
			r.Put("/me/components/{componentID}/order", pageHandler.MoveComponent)
			r.Patch("/me/components/{componentID}", pageHandler.EditComponent)
			r.Get("/{subjectID}", pageHandler.GetPage)
		})

		postHandler := handlers.NewPostHandler(rt.provisioner, rt.posts, rt.logger)
		r.Route("/posts", func(r chi.Router) {
			r.Get("/me", postHandler.ListCurrentPosts)
			r.Post("/", postHandler.CreateTextPost)
			r.Get("/{subjectID}", postHandler.ListPosts)
		})

		followHandler := handlers.NewFollowHandler(rt.provisioner, rt.follows, rt.logger)
		r.Route("/following", func(r chi.Router) {
			r.Get("/", followHandler.ListFollowing)
			r.Post("/", followHandler.Follow)
			r.Delete("/{subjectID}", followHandler.Unfollow)
		})

		mediaHandler := handlers.NewMediaHandler(rt.provisioner, rt.media, rt.logger)
		r.Post("/images/upload-url", mediaHandler.GetUploadURL)
	})

	return router
}

// authenticate picks the auth strategy for the deployment: behind the
// gateway the token is already validated, locally we validate it ourselves
func (rt *Router) authenticate() func(next http.Handler) http.Handler {
	if rt.validator == nil {
		return middleware.AuthenticateForLambda()
	}
	return middleware.Authenticate(rt.validator, rt.logger)
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
