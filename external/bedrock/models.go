package bedrock

import (
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// DefaultModels is tried in order until one model answers.
var DefaultModels = []string{
	"anthropic.claude-3-haiku-20240307-v1:0",
	"meta.llama3-2-3b-instruct-v1:0",
	"meta.llama3-2-1b-instruct-v1:0",
	"amazon.titan-text-lite-v1",
	"anthropic.claude-3-sonnet-20240229-v1:0",
	"anthropic.claude-3-5-sonnet-20240620-v1:0",
}

type modelFamily string

const (
	familyClaude modelFamily = "claude"
	familyLlama  modelFamily = "llama"
	familyTitan  modelFamily = "titan"
)

func familyOf(modelID string) modelFamily {
	switch {
	case strings.HasPrefix(modelID, "amazon.titan"):
		return familyTitan
	case strings.HasPrefix(modelID, "meta.llama"):
		return familyLlama
	default:
		return familyClaude
	}
}

type generationParams struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

type claudeRequest struct {
	Prompt            string  `json:"prompt"`
	MaxTokensToSample int     `json:"max_tokens_to_sample"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
}

type claudeResponse struct {
	Completion string `json:"completion"`
}

type llamaRequest struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type llamaResponse struct {
	Generation string `json:"generation"`
}

type titanRequest struct {
	InputText            string              `json:"inputText"`
	TextGenerationConfig titanGenerationConf `json:"textGenerationConfig"`
}

type titanGenerationConf struct {
	MaxTokenCount int      `json:"maxTokenCount"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"topP"`
	StopSequences []string `json:"stopSequences"`
}

type titanResponse struct {
	Results []struct {
		OutputText string `json:"outputText"`
	} `json:"results"`
}

func encodeRequest(modelID, systemPrompt, userPrompt string, params generationParams) ([]byte, error) {
	var body any
	switch familyOf(modelID) {
	case familyTitan:
		body = titanRequest{
			InputText: systemPrompt + "\n\n" + userPrompt + "\n\nProvide your analysis:",
			TextGenerationConfig: titanGenerationConf{
				MaxTokenCount: params.MaxTokens,
				Temperature:   params.Temperature,
				TopP:          params.TopP,
				StopSequences: []string{},
			},
		}
	case familyLlama:
		body = llamaRequest{
			Prompt: "<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n" + systemPrompt +
				"<|eot_id|><|start_header_id|>user<|end_header_id|>\n" + userPrompt +
				"<|eot_id|><|start_header_id|>assistant<|end_header_id|>",
			MaxGenLen:   params.MaxTokens,
			Temperature: params.Temperature,
			TopP:        params.TopP,
		}
	default:
		body = claudeRequest{
			Prompt:            "\n\nHuman: " + systemPrompt + "\n\n" + userPrompt + "\n\nAssistant:",
			MaxTokensToSample: params.MaxTokens,
			Temperature:       params.Temperature,
			TopP:              params.TopP,
		}
	}
	return sonic.Marshal(body)
}

func decodeResponse(modelID string, raw []byte) (string, error) {
	var text string
	switch familyOf(modelID) {
	case familyTitan:
		var resp titanResponse
		if err := sonic.Unmarshal(raw, &resp); err != nil {
			return "", fmt.Errorf("decode titan response: %w", err)
		}
		if len(resp.Results) > 0 {
			text = resp.Results[0].OutputText
		}
	case familyLlama:
		var resp llamaResponse
		if err := sonic.Unmarshal(raw, &resp); err != nil {
			return "", fmt.Errorf("decode llama response: %w", err)
		}
		text = resp.Generation
	default:
		var resp claudeResponse
		if err := sonic.Unmarshal(raw, &resp); err != nil {
			return "", fmt.Errorf("decode claude response: %w", err)
		}
		text = resp.Completion
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("model %s returned empty text", modelID)
	}
	return text, nil
}
