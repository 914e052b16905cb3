package image

import "context"

type Params struct {
	Prompt   string  `json:"prompt"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Strength float64 `json:"strength"`
	Seed     *int64  `json:"seed,omitempty"`
}

type Result struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
	Seed          *int64 `json:"seed,omitempty"`
	Model         string `json:"model,omitempty"`
}

type Generator interface {
	Generate(context.Context, Params) (Result, error)
}
