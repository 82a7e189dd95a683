package smartfn

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

type googleProvider struct {
	client *genai.Client
}

func newGoogleProvider(cfg Config) (providerClient, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, errors.New("smartfn: Google API key is required to use ProviderGoogle")
	}
	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.GoogleAPIKey,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.GoogleBaseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &googleProvider{client: gc}, nil
}

func (p *googleProvider) generate(ctx context.Context, plan generatePlan) (generateResult, error) {
	cfg := &genai.GenerateContentConfig{}
	if strings.TrimSpace(plan.System) != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: plan.System}},
		}
	}
	if plan.Temperature != nil {
		cfg.Temperature = genai.Ptr[float32](*plan.Temperature)
	}
	if plan.MaxOutputTokens != nil {
		cfg.MaxOutputTokens = int32(*plan.MaxOutputTokens)
	}
	if plan.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseJsonSchema = plan.Schema.Definition
	}
	if err := applyGoogleParams(cfg, plan.Extra); err != nil {
		return generateResult{}, err
	}

	res, err := p.client.Models.GenerateContent(ctx, plan.Model, genai.Text(plan.Prompt), cfg)
	if err != nil {
		return generateResult{}, err
	}
	return toGenerateResult(res), nil
}

func applyGoogleParams(cfg *genai.GenerateContentConfig, extra map[string]any) error {
	for key, v := range extra {
		switch key {
		case "top_p":
			f, ok := floatParam(v)
			if !ok {
				return badParam(key, v)
			}
			cfg.TopP = genai.Ptr[float32](f)
		case "top_k":
			f, ok := floatParam(v)
			if !ok {
				return badParam(key, v)
			}
			cfg.TopK = genai.Ptr[float32](f)
		case "seed":
			n, ok := intParam(v)
			if !ok {
				return badParam(key, v)
			}
			cfg.Seed = genai.Ptr[int32](int32(n))
		case "stop":
			s, ok := stringsParam(v)
			if !ok {
				return badParam(key, v)
			}
			cfg.StopSequences = s
		case "presence_penalty":
			f, ok := floatParam(v)
			if !ok {
				return badParam(key, v)
			}
			cfg.PresencePenalty = genai.Ptr[float32](f)
		case "frequency_penalty":
			f, ok := floatParam(v)
			if !ok {
				return badParam(key, v)
			}
			cfg.FrequencyPenalty = genai.Ptr[float32](f)
		case "labels":
			m, ok := v.(map[string]string)
			if !ok {
				return badParam(key, v)
			}
			cfg.Labels = m
		default:
			return unknownParam(key)
		}
	}
	return nil
}

func toGenerateResult(res *genai.GenerateContentResponse) generateResult {
	gr := generateResult{}
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return gr
	}
	for _, p := range res.Candidates[0].Content.Parts {
		if p.Text != "" {
			// If multiple text parts, concatenate with a newline.
			if gr.Text == "" {
				gr.Text = p.Text
			} else {
				gr.Text += "\n" + p.Text
			}
		}
	}

	if res.UsageMetadata != nil {
		if res.UsageMetadata.PromptTokenCount > 0 {
			pt := int(res.UsageMetadata.PromptTokenCount)
			gr.PromptTokens = &pt
		}
		if res.UsageMetadata.CandidatesTokenCount > 0 {
			ct := int(res.UsageMetadata.CandidatesTokenCount)
			gr.CompletionTokens = &ct
		}
		if res.UsageMetadata.TotalTokenCount > 0 {
			tt := int(res.UsageMetadata.TotalTokenCount)
			gr.TotalTokens = &tt
		}
	}
	return gr
}
