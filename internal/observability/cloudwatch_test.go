package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

type recordingPublisher struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (r *recordingPublisher) PutMetricData(_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	r.inputs = append(r.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, r.err
}

func TestRecommendationMetrics_PublishesCountAndLatency(t *testing.T) {
	publisher := &recordingPublisher{}
	metrics := NewRecommendationMetrics(publisher, "", "fpl-advisor", nil)
	fixed := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	metrics.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	metrics.RecordRecommendation(ctx, "no_candidate", 1500*time.Microsecond)

	if len(publisher.inputs) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(publisher.inputs))
	}
	input := publisher.inputs[0]
	if aws.ToString(input.Namespace) != "FPLAdvisor" {
		t.Fatalf("unexpected namespace %q", aws.ToString(input.Namespace))
	}
	if len(input.MetricData) != 2 {
		t.Fatalf("expected 2 datums, got %d", len(input.MetricData))
	}

	latency := input.MetricData[1]
	if aws.ToString(latency.MetricName) != "RecommendLatency" || aws.ToFloat64(latency.Value) != 1.5 {
		t.Fatalf("unexpected latency datum: %s=%v", aws.ToString(latency.MetricName), aws.ToFloat64(latency.Value))
	}
	if latency.Unit != cwtypes.StandardUnitMilliseconds {
		t.Fatalf("unexpected unit %s", latency.Unit)
	}
	outcome := latency.Dimensions[1]
	if aws.ToString(outcome.Name) != "Outcome" || aws.ToString(outcome.Value) != "no_candidate" {
		t.Fatalf("unexpected outcome dimension")
	}
	if !aws.ToTime(latency.Timestamp).Equal(fixed) {
		t.Fatalf("unexpected timestamp")
	}
}

func TestRecommendationMetrics_SwallowsErrors(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("throttled")}
	metrics := NewRecommendationMetrics(publisher, "ns", "svc", nil)

	metrics.RecordRecommendation(context.Background(), "ok", time.Second)

	if len(publisher.inputs) != 1 {
		t.Fatalf("expected publish attempt")
	}
}
