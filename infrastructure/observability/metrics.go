// Package observability emits operational metrics to CloudWatch.
package observability

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"forum-backend/application/ports"
)

const metricsNamespace = "ForumBackend/Cascade"

// CloudWatchMetrics implements ports.MetricsEmitter. Emission failures
// are logged and swallowed so a metrics outage never fails a purge.
type CloudWatchMetrics struct {
	client *cloudwatch.Client
	logger *zap.Logger
}

// NewCloudWatchMetrics creates a CloudWatch-backed metrics emitter.
func NewCloudWatchMetrics(client *cloudwatch.Client, logger *zap.Logger) ports.MetricsEmitter {
	return &CloudWatchMetrics{client: client, logger: logger}
}

func (m *CloudWatchMetrics) RecordPurge(ctx context.Context, questions, answers int) {
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("QuestionsDeleted"),
				Value:      aws.Float64(float64(questions)),
				Unit:       types.StandardUnitCount,
			},
			{
				MetricName: aws.String("AnswersDeleted"),
				Value:      aws.Float64(float64(answers)),
				Unit:       types.StandardUnitCount,
			},
		},
	})
	if err != nil {
		m.logger.Warn("Failed to record purge metrics", zap.Error(err))
	}
}
