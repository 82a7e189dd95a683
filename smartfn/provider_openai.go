package smartfn

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openAIProvider struct {
	client *openai.Client
}

func newOpenAIProvider(cfg Config) (providerClient, error) {
	if cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
		return nil, errors.New("smartfn: OpenAI API key is required to use ProviderOpenAI")
	}
	oc := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = cfg.OpenAIBaseURL
	}
	if cfg.OpenAIOrgID != "" {
		oc.OrgID = cfg.OpenAIOrgID
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	} else if cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &openAIProvider{client: openai.NewClientWithConfig(oc)}, nil
}

func (p *openAIProvider) generate(ctx context.Context, plan generatePlan) (generateResult, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(plan.System) != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: plan.System,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: plan.Prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:    plan.Model,
		Messages: msgs,
	}
	if plan.Temperature != nil {
		req.Temperature = *plan.Temperature
	}
	if plan.MaxOutputTokens != nil {
		req.MaxCompletionTokens = *plan.MaxOutputTokens
	}
	if plan.Schema != nil {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   plan.Schema.Name,
				Schema: rawJSONSchema{plan.Schema.Definition},
			},
		}
	}
	if err := applyOpenAIParams(&req, plan.Extra); err != nil {
		return generateResult{}, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return generateResult{}, err
	}
	if len(resp.Choices) == 0 {
		return generateResult{}, errors.New("smartfn: provider returned no choices")
	}

	res := generateResult{Text: resp.Choices[0].Message.Content}
	if resp.Usage.PromptTokens > 0 {
		pt := resp.Usage.PromptTokens
		res.PromptTokens = &pt
	}
	if resp.Usage.CompletionTokens > 0 {
		ct := resp.Usage.CompletionTokens
		res.CompletionTokens = &ct
	}
	if resp.Usage.TotalTokens > 0 {
		tt := resp.Usage.TotalTokens
		res.TotalTokens = &tt
	}
	return res, nil
}

func applyOpenAIParams(req *openai.ChatCompletionRequest, extra map[string]any) error {
	for key, v := range extra {
		switch key {
		case "top_p":
			f, ok := floatParam(v)
			if !ok {
				return badParam(key, v)
			}
			req.TopP = f
		case "seed":
			n, ok := intParam(v)
			if !ok {
				return badParam(key, v)
			}
			req.Seed = &n
		case "stop":
			s, ok := stringsParam(v)
			if !ok {
				return badParam(key, v)
			}
			req.Stop = s
		case "presence_penalty":
			f, ok := floatParam(v)
			if !ok {
				return badParam(key, v)
			}
			req.PresencePenalty = f
		case "frequency_penalty":
			f, ok := floatParam(v)
			if !ok {
				return badParam(key, v)
			}
			req.FrequencyPenalty = f
		case "user":
			s, ok := v.(string)
			if !ok {
				return badParam(key, v)
			}
			req.User = s
		default:
			return unknownParam(key)
		}
	}
	return nil
}
