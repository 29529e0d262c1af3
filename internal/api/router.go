package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/mesto-api/internal/api/middleware"
	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/phrazzld/mesto-api/internal/service/auth"
)

// RouterDeps holds everything the router needs to build its handlers.
type RouterDeps struct {
	Users  service.UserService
	Cards  service.CardService
	Tokens auth.TokenCodec
	Server config.ServerConfig
	Auth   config.AuthConfig
	Logger *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.NewTraceMiddleware(log))
	r.Use(middleware.RequestLogger)
	r.Use(middleware.NewRecoverer(HandleAPIError))
	if len(deps.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.Server.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Origin"},
			ExposedHeaders:   []string{middleware.TraceHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.NotFound(NotFoundHandler)
	r.MethodNotAllowed(MethodNotAllowedHandler)

	authHandler := NewAuthHandler(deps.Users, deps.Auth, log)
	userHandler := NewUserHandler(deps.Users, log)
	cardHandler := NewCardHandler(deps.Cards, log)
	authMiddleware := middleware.NewAuthMiddleware(deps.Tokens, HandleAPIError)

	validate := func(s middleware.Schema) func(http.Handler) http.Handler {
		return middleware.Validate(s, HandleAPIError)
	}

	// Public routes
	r.With(validate(signupSchema)).Post("/signup", authHandler.Signup)
	r.With(validate(signinSchema)).Post("/signin", authHandler.Signin)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/signout", authHandler.Signout)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Get("/me", userHandler.GetMe)
			r.With(validate(updateProfileSchema)).Patch("/me", userHandler.UpdateProfile)
			r.With(validate(updateAvatarSchema)).Patch("/me/avatar", userHandler.UpdateAvatar)
			r.With(validate(userIDSchema)).Get("/{id}", userHandler.GetUser)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListCards)
			r.With(validate(createCardSchema)).Post("/", cardHandler.CreateCard)
			r.Route("/{cardId}", func(r chi.Router) {
				r.Use(validate(cardIDSchema))
				r.Delete("/", cardHandler.DeleteCard)
				r.Put("/likes", cardHandler.LikeCard)
				r.Delete("/likes", cardHandler.UnlikeCard)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
