package routes

import (
	"net/http"

	_ "github.com/NexusOfThings/registration-system/docs" // swagger spec registration
	"github.com/NexusOfThings/registration-system/handlers"
	"github.com/NexusOfThings/registration-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	pagesHandler *handlers.PagesHandler,
	eventHandler *handlers.EventHandler,
	registrationHandler *handlers.RegistrationHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
	healthHandler *handlers.HealthHandler,
	jwtSecret []byte,
	allowedOrigins []string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// The registration endpoint must answer non-POST requests with a JSON
	// 405, not chi's default empty body.
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"success": false, "message": "Invalid request method"}` + "\n"))
	})

	// HTML pages
	router.Get("/", pagesHandler.Home)
	router.Get("/registration/{teamCode}", pagesHandler.Confirmation)

	// Public JSON surface
	router.Get("/get-event-details/{eventName}", eventHandler.GetEventDetails)
	router.Post("/register-participant", registrationHandler.Register)
	router.Get("/api/participants", eventHandler.ListParticipants)
	router.Get("/api/events", eventHandler.ListEvents)

	// Live registration feed
	router.Get("/ws/registrations", webSocketHandler.ServeWs)

	// Operational endpoints
	router.Get("/healthz", healthHandler.Check)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Admin API
	router.Route("/admin", func(r chi.Router) {
		r.Post("/login", adminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Post("/events", adminHandler.UpsertEvent)
			r.Post("/events/{eventName}/coordinators", adminHandler.AddCoordinator)
			r.Delete("/participants/{teamCode}", adminHandler.DeleteParticipant)
		})
	})
}
