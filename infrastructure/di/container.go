// Package di assembles the application object graph with google/wire.
package di

import (
	"go.uber.org/zap"

	"forum-backend/application/services"
	"forum-backend/infrastructure/config"
	"forum-backend/interfaces/http/rest"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	ChannelService  *services.ChannelService
	QuestionService *services.QuestionService
	AnswerService   *services.AnswerService
	CascadeService  *services.CascadeService
	Router          *rest.Router
}
