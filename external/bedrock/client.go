package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultRegion      = "eu-central-1"
	defaultMaxTokens   = 1024
	defaultTemperature = 0.7
	defaultTopP        = 0.9
)

var (
	ErrDisabled        = errors.New("narrative generation is disabled")
	ErrNoModelAnswered = errors.New("no bedrock model produced a narrative")
)

var tracer = otel.Tracer("fpl-advisor/external/bedrock")

// ModelInvoker is the subset of the Bedrock Runtime client used here.
type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type Config struct {
	Enabled   bool
	Region    string
	Models    []string
	MaxTokens int
	Logger    *logging.Logger
}

// Generator writes persona narratives with the first Bedrock model that answers.
type Generator struct {
	enabled  bool
	invoker  ModelInvoker
	models   []string
	params   generationParams
	personas PersonaCatalogue
	logger   *logging.Logger
}

// NewGeneratorFromAWS loads the default AWS credential chain for the region.
func NewGeneratorFromAWS(ctx context.Context, cfg Config) (*Generator, error) {
	if !cfg.Enabled {
		return NewGenerator(nil, cfg)
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewGenerator(bedrockruntime.NewFromConfig(awsCfg), cfg)
}

func NewGenerator(invoker ModelInvoker, cfg Config) (*Generator, error) {
	personas, err := DefaultPersonaCatalogue()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	models := make([]string, 0, len(cfg.Models))
	for _, model := range cfg.Models {
		if model = strings.TrimSpace(model); model != "" {
			models = append(models, model)
		}
	}
	if len(models) == 0 {
		models = append(models, DefaultModels...)
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Generator{
		enabled:  cfg.Enabled && invoker != nil,
		invoker:  invoker,
		models:   models,
		params:   generationParams{MaxTokens: maxTokens, Temperature: defaultTemperature, TopP: defaultTopP},
		personas: personas,
		logger:   logger,
	}, nil
}

func (g *Generator) Generate(ctx context.Context, req recommendation.NarrativeRequest) (string, error) {
	if !g.enabled {
		return "", ErrDisabled
	}

	ctx, span := tracer.Start(ctx, "bedrock.Generator.Generate")
	defer span.End()

	systemPrompt := g.personas.SystemPrompt(req.Persona)
	userPrompt := BuildAnalysisPrompt(req)

	var errs []error
	for _, modelID := range g.models {
		text, err := g.invoke(ctx, modelID, systemPrompt, userPrompt)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			g.logger.DebugContext(ctx, "bedrock model failed, trying next", "model_id", modelID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", modelID, err))
			continue
		}
		span.SetAttributes(attribute.String("bedrock.model_id", modelID))
		return text, nil
	}

	err := errors.Join(append([]error{ErrNoModelAnswered}, errs...)...)
	span.RecordError(err)
	return "", err
}

func (g *Generator) invoke(ctx context.Context, modelID, systemPrompt, userPrompt string) (string, error) {
	body, err := encodeRequest(modelID, systemPrompt, userPrompt, g.params)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	out, err := g.invoker.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("invoke model: %w", err)
	}
	return decodeResponse(modelID, out.Body)
}
