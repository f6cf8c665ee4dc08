package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"forum-backend/application/ports"
	"forum-backend/application/services"
	"forum-backend/infrastructure/config"
	"forum-backend/infrastructure/messaging/eventbridge"
	"forum-backend/infrastructure/messaging/sqs"
	"forum-backend/infrastructure/observability"
	"forum-backend/infrastructure/persistence/dynamodb"
	"forum-backend/interfaces/http/rest"
	"forum-backend/pkg/auth"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// ProvideAWSConfig creates AWS configuration, instrumented for tracing
// when enabled.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideSQSClient creates an SQS client
func ProvideSQSClient(awsCfg aws.Config) *awssqs.Client {
	return awssqs.NewFromConfig(awsCfg)
}

// ProvideChannelRepository creates a channel repository
func ProvideChannelRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ChannelRepository {
	return dynamodb.NewChannelRepository(client, cfg.ChannelsTable, logger)
}

// ProvideQuestionRepository creates a question repository
func ProvideQuestionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.QuestionRepository {
	return dynamodb.NewQuestionRepository(client, cfg.QuestionsTable, cfg.QuestionsByTimeLSI, logger)
}

// ProvideAnswerRepository creates an answer repository
func ProvideAnswerRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AnswerRepository {
	return dynamodb.NewAnswerRepository(client, cfg.AnswersTable, logger)
}

// ProvideDeletionQueue creates the purge job queue
func ProvideDeletionQueue(client *awssqs.Client, cfg *config.Config, logger *zap.Logger) ports.DeletionQueue {
	return sqs.NewDeletionQueue(client, cfg.PurgeQueueURL, logger)
}

// ProvideEventPublisher creates the purge event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetricsEmitter creates the purge metrics emitter
func ProvideMetricsEmitter(client *awscloudwatch.Client, logger *zap.Logger) ports.MetricsEmitter {
	return observability.NewCloudWatchMetrics(client, logger)
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideChannelService creates the channel service
func ProvideChannelService(channels ports.ChannelRepository, logger *zap.Logger) *services.ChannelService {
	return services.NewChannelService(channels, logger)
}

// ProvideQuestionService creates the question service
func ProvideQuestionService(
	channels ports.ChannelRepository,
	questions ports.QuestionRepository,
	queue ports.DeletionQueue,
	logger *zap.Logger,
) *services.QuestionService {
	return services.NewQuestionService(channels, questions, queue, logger)
}

// ProvideAnswerService creates the answer service
func ProvideAnswerService(
	channels ports.ChannelRepository,
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	logger *zap.Logger,
) *services.AnswerService {
	return services.NewAnswerService(channels, questions, answers, logger)
}

// ProvideCascadeService creates the cascade deletion service
func ProvideCascadeService(
	channels ports.ChannelRepository,
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	events ports.EventPublisher,
	metrics ports.MetricsEmitter,
	cfg *config.Config,
	logger *zap.Logger,
) *services.CascadeService {
	return services.NewCascadeService(channels, questions, answers, events, metrics, cfg.MaxConcurrentBatches, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	channels *services.ChannelService,
	questions *services.QuestionService,
	answers *services.AnswerService,
	validator *auth.JWTValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(channels, questions, answers, validator, cfg.EnableCORS, logger)
}
