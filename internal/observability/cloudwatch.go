package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
)

const metricPublishTimeout = 3 * time.Second

// MetricPublisher is the CloudWatch call used by RecommendationMetrics.
type MetricPublisher interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// RecommendationMetrics publishes one count and one latency datum per
// recommend call, dimensioned by outcome.
type RecommendationMetrics struct {
	client    MetricPublisher
	namespace string
	service   string
	logger    *logging.Logger
	now       func() time.Time
}

func NewCloudWatchMetrics(ctx context.Context, region, namespace, service string, logger *logging.Logger) (*RecommendationMetrics, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config for cloudwatch: %w", err)
	}
	return NewRecommendationMetrics(cloudwatch.NewFromConfig(awsCfg), namespace, service, logger), nil
}

func NewRecommendationMetrics(client MetricPublisher, namespace, service string, logger *logging.Logger) *RecommendationMetrics {
	if logger == nil {
		logger = logging.Default()
	}
	if namespace == "" {
		namespace = "FPLAdvisor"
	}
	return &RecommendationMetrics{
		client:    client,
		namespace: namespace,
		service:   service,
		logger:    logger,
		now:       time.Now,
	}
}

func (m *RecommendationMetrics) RecordRecommendation(ctx context.Context, outcome string, elapsed time.Duration) {
	// request cancellation must not drop the datum
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricPublishTimeout)
	defer cancel()

	timestamp := m.now().UTC()
	dimensions := []cwtypes.Dimension{
		{Name: aws.String("Service"), Value: aws.String(m.service)},
		{Name: aws.String("Outcome"), Value: aws.String(outcome)},
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: aws.String("Recommendations"),
				Dimensions: dimensions,
				Timestamp:  aws.Time(timestamp),
				Unit:       cwtypes.StandardUnitCount,
				Value:      aws.Float64(1),
			},
			{
				MetricName: aws.String("RecommendLatency"),
				Dimensions: dimensions,
				Timestamp:  aws.Time(timestamp),
				Unit:       cwtypes.StandardUnitMilliseconds,
				Value:      aws.Float64(float64(elapsed.Microseconds()) / 1000),
			},
		},
	})
	if err != nil {
		m.logger.WarnContext(ctx, "publish cloudwatch metrics failed", "outcome", outcome, "error", err)
	}
}
