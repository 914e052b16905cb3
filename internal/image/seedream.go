package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type SeedreamGenerator struct {
	Client  *http.Client
	BaseURL string
	Key     string
	Model   string
}

func NewSeedreamGenerator(i *do.Injector) (*SeedreamGenerator, error) {
	return &SeedreamGenerator{
		Client:  &http.Client{Timeout: 2 * time.Minute},
		BaseURL: do.MustInvokeNamed[string](i, "doubao_base_url"),
		Key:     do.MustInvokeNamed[string](i, "doubao_api_key"),
		Model:   do.MustInvokeNamed[string](i, "doubao_model"),
	}, nil
}

type seedreamRequest struct {
	Model          string  `json:"model"`
	Prompt         string  `json:"prompt"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Scale          float64 `json:"scale"`
	Seed           int64   `json:"seed"`
	ResponseFormat string  `json:"response_format"`
}

type seedreamResponse struct {
	Data []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
	Seed *int64 `json:"seed"`
}

func (g *SeedreamGenerator) Generate(ctx context.Context, params Params) (Result, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("seedream").With("model", g.Model)
	logger.Info("generating image", "width", params.Width, "height", params.Height)

	// The provider takes style strength on a 1-10 scale; -1 asks for a
	// random seed.
	body, err := json.Marshal(seedreamRequest{
		Model:          g.Model,
		Prompt:         params.Prompt,
		Width:          params.Width,
		Height:         params.Height,
		Scale:          params.Strength * 10,
		Seed:           lo.FromPtrOr(params.Seed, -1),
		ResponseFormat: "url",
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/images/generations", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.Key)

	resp, err := g.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, &ProviderError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	var out seedreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decoding seedream response: %w", err)
	}
	if len(out.Data) == 0 {
		return Result{}, fmt.Errorf("seedream response contains no images")
	}

	logger.Info("received image", "seed", lo.FromPtrOr(out.Seed, -1))
	return Result{
		URL:           out.Data[0].URL,
		RevisedPrompt: lo.Ternary(out.Data[0].RevisedPrompt != "", out.Data[0].RevisedPrompt, params.Prompt),
		Seed:          out.Seed,
		Model:         g.Model,
	}, nil
}
