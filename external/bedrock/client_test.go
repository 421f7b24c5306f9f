package bedrock

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	calls     []string
	bodies    map[string][]byte
	responses map[string][]byte
	failures  map[string]error
}

func (f *fakeInvoker) InvokeModel(_ context.Context, params *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	modelID := *params.ModelId
	f.calls = append(f.calls, modelID)
	if f.bodies == nil {
		f.bodies = map[string][]byte{}
	}
	f.bodies[modelID] = params.Body
	if err, ok := f.failures[modelID]; ok {
		return nil, err
	}
	return &bedrockruntime.InvokeModelOutput{Body: f.responses[modelID]}, nil
}

func TestGenerator_FallsThroughModelChain(t *testing.T) {
	invoker := &fakeInvoker{
		failures: map[string]error{
			"anthropic.claude-3-haiku-20240307-v1:0": errors.New("access denied"),
		},
		responses: map[string][]byte{
			"meta.llama3-2-3b-instruct-v1:0": []byte(`{"generation":"  Bring in the striker.  "}`),
		},
	}
	gen, err := NewGenerator(invoker, Config{Enabled: true})
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), recommendation.NarrativeRequest{Persona: recommendation.PersonaAnalyst, Gameweek: 7})
	require.NoError(t, err)
	assert.Equal(t, "Bring in the striker.", text)
	assert.Equal(t, []string{"anthropic.claude-3-haiku-20240307-v1:0", "meta.llama3-2-3b-instruct-v1:0"}, invoker.calls)

	var body llamaRequest
	require.NoError(t, sonic.Unmarshal(invoker.bodies["meta.llama3-2-3b-instruct-v1:0"], &body))
	assert.Contains(t, body.Prompt, "<|start_header_id|>system<|end_header_id|>\nYou are a data-driven FPL analyst")
	assert.Contains(t, body.Prompt, "Gameweek 7")
	assert.Equal(t, 1024, body.MaxGenLen)
}

func TestGenerator_AllModelsFail(t *testing.T) {
	invoker := &fakeInvoker{
		responses: map[string][]byte{
			"amazon.titan-text-lite-v1": []byte(`{"results":[]}`),
		},
		failures: map[string]error{
			"anthropic.claude-3-haiku-20240307-v1:0": errors.New("throttled"),
		},
	}
	gen, err := NewGenerator(invoker, Config{
		Enabled: true,
		Models:  []string{"anthropic.claude-3-haiku-20240307-v1:0", "amazon.titan-text-lite-v1"},
	})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), recommendation.NarrativeRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoModelAnswered)
	assert.Len(t, invoker.calls, 2)
}

func TestGenerator_Disabled(t *testing.T) {
	invoker := &fakeInvoker{}
	gen, err := NewGenerator(invoker, Config{Enabled: false})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), recommendation.NarrativeRequest{})
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Empty(t, invoker.calls)
}

func TestEncodeRequest_PerFamily(t *testing.T) {
	params := generationParams{MaxTokens: 1024, Temperature: 0.7, TopP: 0.9}

	raw, err := encodeRequest("anthropic.claude-3-haiku-20240307-v1:0", "SYS", "USER", params)
	require.NoError(t, err)
	var claude claudeRequest
	require.NoError(t, sonic.Unmarshal(raw, &claude))
	assert.Equal(t, "\n\nHuman: SYS\n\nUSER\n\nAssistant:", claude.Prompt)
	assert.Equal(t, 1024, claude.MaxTokensToSample)

	raw, err = encodeRequest("amazon.titan-text-lite-v1", "SYS", "USER", params)
	require.NoError(t, err)
	var titan titanRequest
	require.NoError(t, sonic.Unmarshal(raw, &titan))
	assert.Equal(t, "SYS\n\nUSER\n\nProvide your analysis:", titan.InputText)
	assert.Equal(t, 0.9, titan.TextGenerationConfig.TopP)
	assert.NotNil(t, titan.TextGenerationConfig.StopSequences)
}

func TestDecodeResponse(t *testing.T) {
	text, err := decodeResponse("amazon.titan-text-lite-v1", []byte(`{"results":[{"outputText":"hold"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "hold", text)

	text, err = decodeResponse("anthropic.claude-3-5-sonnet-20240620-v1:0", []byte(`{"completion":" sell "}`))
	require.NoError(t, err)
	assert.Equal(t, "sell", text)

	_, err = decodeResponse("meta.llama3-2-1b-instruct-v1:0", []byte(`{"generation":""}`))
	assert.Error(t, err)
}
