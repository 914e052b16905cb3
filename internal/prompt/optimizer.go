package prompt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
)

// ErrOptimizationFailed wraps every failure of the optimization round trip:
// transport errors, non-success statuses and malformed responses alike.
var ErrOptimizationFailed = errors.New("prompt optimization failed")

type OptimizeParams struct {
	Theme            string
	Styles           string
	Size             string
	Purpose          string
	ExtraDescription string
}

type Optimizer interface {
	Optimize(context.Context, OptimizeParams) (string, error)
	Refine(ctx context.Context, originalPrompt, instruction string) (string, error)
}

type DeepSeekConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type DeepSeekOptimizer struct {
	client *openai.Client
	model  string
}

func NewDeepSeekOptimizer(i *do.Injector) (Optimizer, error) {
	return NewDeepSeekOptimizerWithConfig(DeepSeekConfig{
		APIKey:  do.MustInvokeNamed[string](i, "deepseek_api_key"),
		BaseURL: do.MustInvokeNamed[string](i, "deepseek_base_url"),
		Model:   do.MustInvokeNamed[string](i, "deepseek_model"),
	}), nil
}

func NewDeepSeekOptimizerWithConfig(cfg DeepSeekConfig) *DeepSeekOptimizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: lo.Ternary(cfg.Timeout > 0, cfg.Timeout, 30*time.Second),
	}
	return &DeepSeekOptimizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (o *DeepSeekOptimizer) Optimize(ctx context.Context, params OptimizeParams) (string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("optimizer").Info("optimizing prompt", "theme", params.Theme)

	user := fmt.Sprintf(optimizerUserPrompt,
		params.Theme,
		params.Styles,
		params.Size,
		lo.Ternary(params.Purpose != "", params.Purpose, "general"),
		lo.Ternary(params.ExtraDescription != "", params.ExtraDescription, "none"),
	)
	return o.chat(ctx, optimizerSystemPrompt, user)
}

func (o *DeepSeekOptimizer) Refine(ctx context.Context, originalPrompt, instruction string) (string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("optimizer").Info("refining prompt", "instruction", instruction)

	user := fmt.Sprintf(refineUserPrompt, originalPrompt, instruction)
	return o.chat(ctx, refineSystemPrompt, user)
}

func (o *DeepSeekOptimizer) chat(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOptimizationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contains no choices", ErrOptimizationFailed)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: response contains empty prompt", ErrOptimizationFailed)
	}
	return text, nil
}
