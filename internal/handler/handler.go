package handler

import (
	"context"
	"fmt"

	"github.com/VonLan233/cute-illustration-agent/internal/archive"
	"github.com/VonLan233/cute-illustration-agent/internal/catalog"
	"github.com/VonLan233/cute-illustration-agent/internal/image"
	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/VonLan233/cute-illustration-agent/internal/prompt"
	"github.com/VonLan233/cute-illustration-agent/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const defaultStyleStrength = 0.8

type GenerateInput struct {
	Theme            string   `json:"theme"`
	Styles           []string `json:"styles"`
	Size             string   `json:"size"`
	Purpose          string   `json:"purpose,omitempty"`
	ExtraDescription string   `json:"extra_description,omitempty"`
	StyleStrength    float64  `json:"style_strength"`
}

type GenerateOutput struct {
	GenerationID    string        `json:"generation_id"`
	ImageURL        string        `json:"image_url"`
	OptimizedPrompt string        `json:"optimized_prompt"`
	OriginalRequest store.Request `json:"original_request"`
}

type RefineInput struct {
	GenerationID      string `json:"generation_id"`
	RefineInstruction string `json:"refine_instruction"`
}

type RefineOutput struct {
	GenerationID         string `json:"generation_id"`
	ImageURL             string `json:"image_url"`
	OptimizedPrompt      string `json:"optimized_prompt"`
	OriginalGenerationID string `json:"original_generation_id"`
}

type Handler struct {
	optimizer prompt.Optimizer
	generator image.Generator
	store     store.Store
	archiver  *archive.Archiver
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		optimizer: do.MustInvoke[prompt.Optimizer](i),
		generator: do.MustInvoke[image.Generator](i),
		store:     do.MustInvoke[store.Store](i),
		archiver:  do.MustInvoke[*archive.Archiver](i),
	}, nil
}

func (h *Handler) Generate(ctx context.Context, input GenerateInput) (GenerateOutput, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("generate").With("theme", input.Theme)
	logger.Info("handling generation request")

	input.Size = lo.Ternary(input.Size != "", input.Size, catalog.DefaultSizeID)
	input.StyleStrength = lo.Ternary(input.StyleStrength != 0, input.StyleStrength, defaultStyleStrength)

	optimized, err := h.optimizer.Optimize(ctx, prompt.OptimizeParams{
		Theme:            input.Theme,
		Styles:           prompt.FormatStyles(input.Styles),
		Size:             prompt.FormatSize(input.Size),
		Purpose:          input.Purpose,
		ExtraDescription: input.ExtraDescription,
	})
	if err != nil {
		return GenerateOutput{}, err
	}

	width, height := catalog.Dimensions(input.Size)
	result, err := h.generator.Generate(ctx, image.Params{
		Prompt:   optimized,
		Width:    width,
		Height:   height,
		Strength: input.StyleStrength,
	})
	if err != nil {
		return GenerateOutput{}, err
	}

	rec := h.store.CreateGeneration(store.Request{
		Theme:            input.Theme,
		Styles:           input.Styles,
		Size:             input.Size,
		Purpose:          input.Purpose,
		ExtraDescription: input.ExtraDescription,
		StyleStrength:    input.StyleStrength,
	}, result, optimized)
	logger.Info("generation stored", "id", rec.ID)
	h.archiveAsync(ctx, rec)

	return GenerateOutput{
		GenerationID:    rec.ID,
		ImageURL:        rec.ImageURL,
		OptimizedPrompt: rec.OptimizedPrompt,
		OriginalRequest: rec.OriginalRequest,
	}, nil
}

func (h *Handler) Refine(ctx context.Context, input RefineInput) (RefineOutput, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("refine").With("parent", input.GenerationID)
	logger.Info("handling refinement request")

	parent, ok := h.store.Get(input.GenerationID)
	if !ok {
		return RefineOutput{}, fmt.Errorf("%w: %s", store.ErrNotFound, input.GenerationID)
	}

	refined, err := h.optimizer.Refine(ctx, parent.OptimizedPrompt, input.RefineInstruction)
	if err != nil {
		return RefineOutput{}, err
	}

	width, height := catalog.Dimensions(parent.OriginalRequest.Size)
	result, err := h.generator.Generate(ctx, image.Params{
		Prompt:   refined,
		Width:    width,
		Height:   height,
		Strength: parent.OriginalRequest.StyleStrength,
	})
	if err != nil {
		return RefineOutput{}, err
	}

	rec, err := h.store.CreateRefinement(parent.ID, input.RefineInstruction, result, refined)
	if err != nil {
		return RefineOutput{}, err
	}
	logger.Info("refinement stored", "id", rec.ID)
	h.archiveAsync(ctx, rec)

	return RefineOutput{
		GenerationID:         rec.ID,
		ImageURL:             rec.ImageURL,
		OptimizedPrompt:      rec.OptimizedPrompt,
		OriginalGenerationID: parent.ID,
	}, nil
}

// archiveAsync copies the generated image in the background; archive
// failures never fail the request.
func (h *Handler) archiveAsync(ctx context.Context, rec store.Record) {
	if !h.archiver.Enabled() {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := h.archiver.Archive(ctx, rec.ID, rec.ImageURL); err != nil {
			log.FromContextOrDiscard(ctx).Warn("image archive failed", "id", rec.ID, "err", err)
		}
	}()
}
