// Package rest exposes the forum over HTTP.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"forum-backend/application/services"
	"forum-backend/interfaces/http/rest/handlers"
	"forum-backend/interfaces/http/rest/middleware"
	"forum-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	channels   *services.ChannelService
	questions  *services.QuestionService
	answers    *services.AnswerService
	validator  *auth.JWTValidator
	enableCORS bool
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	channels *services.ChannelService,
	questions *services.QuestionService,
	answers *services.AnswerService,
	validator *auth.JWTValidator,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		channels:   channels,
		questions:  questions,
		answers:    answers,
		validator:  validator,
		enableCORS: enableCORS,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator))

		r.Route("/channels", func(r chi.Router) {
			channelHandler := handlers.NewChannelHandler(rt.channels, rt.logger)
			r.Post("/", channelHandler.Create)
			r.Get("/", channelHandler.List)
			r.Get("/{channelId}", channelHandler.Get)
			r.Get("/{channelId}/members", channelHandler.Members)
			r.Put("/{channelId}", channelHandler.AddParticipant)
			r.Delete("/{channelId}", channelHandler.Delete)
		})

		r.Route("/questions", func(r chi.Router) {
			questionHandler := handlers.NewQuestionHandler(rt.questions, rt.channels, rt.logger)
			r.Post("/", questionHandler.Create)
			r.Get("/", questionHandler.List)
			r.Delete("/", questionHandler.DeleteAll)
			r.Get("/{questionId}", questionHandler.Get)
			r.Delete("/{questionId}", questionHandler.Delete)
			r.Put("/{questionId}/vote", questionHandler.Vote)
		})

		r.Route("/answers", func(r chi.Router) {
			answerHandler := handlers.NewAnswerHandler(rt.answers, rt.logger)
			r.Post("/", answerHandler.Create)
			r.Get("/", answerHandler.List)
			r.Put("/{answerId}", answerHandler.Update)
			r.Delete("/{answerId}", answerHandler.Delete)
			r.Put("/{answerId}/vote", answerHandler.Vote)
			r.Put("/{answerId}/accept", answerHandler.Accept)
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
