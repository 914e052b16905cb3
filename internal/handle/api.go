package handle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/VonLan233/cute-illustration-agent/internal/catalog"
	"github.com/VonLan233/cute-illustration-agent/internal/feed"
	"github.com/VonLan233/cute-illustration-agent/internal/handler"
	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/VonLan233/cute-illustration-agent/internal/page"
	"github.com/VonLan233/cute-illustration-agent/internal/store"
	"github.com/samber/do"
)

const (
	serviceName    = "cute-illustration-agent"
	serviceVersion = "1.0.0"

	galleryLimit = 24
)

type API struct {
	handler *handler.Handler
	store   store.Store
	feed    *feed.Generator
	page    *page.Templator
	origins []string
}

func NewAPI(i *do.Injector) (*API, error) {
	return &API{
		handler: do.MustInvoke[*handler.Handler](i),
		store:   do.MustInvoke[store.Store](i),
		feed:    do.MustInvoke[*feed.Generator](i),
		page:    do.MustInvoke[*page.Templator](i),
		origins: do.MustInvokeNamed[[]string](i, "cors_origins"),
	}, nil
}

func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.gallery)
	mux.HandleFunc("GET /health", a.health)
	mux.HandleFunc("GET /feed", a.rss)
	mux.HandleFunc("GET /api/v1/styles", a.styles)
	mux.HandleFunc("GET /api/v1/sizes", a.sizes)
	mux.HandleFunc("GET /api/v1/purposes", a.purposes)
	mux.HandleFunc("POST /api/v1/generate", a.generate)
	mux.HandleFunc("POST /api/v1/refine", a.refine)
	mux.HandleFunc("GET /api/v1/generations/{id}", a.generation)
	mux.HandleFunc("GET /api/v1/generations/{id}/history", a.history)
	return withLogging(withCORS(a.origins, mux))
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "running",
	})
}

func (a *API) gallery(w http.ResponseWriter, r *http.Request) {
	html, err := a.page.Template(r.Context(), page.Params{Records: a.store.Recent(galleryLimit)})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "rendering gallery failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

func (a *API) rss(w http.ResponseWriter, r *http.Request) {
	body, err := a.feed.Generate(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "rendering feed failed")
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(body)
}

func (a *API) styles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"styles": catalog.Styles()})
}

func (a *API) sizes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sizes": catalog.Sizes()})
}

func (a *API) purposes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"purposes": catalog.Purposes()})
}

func (a *API) generate(w http.ResponseWriter, r *http.Request) {
	var input handler.GenerateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateGenerate(input); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	output, err := a.handler.Generate(r.Context(), input)
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Error("generation failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (a *API) refine(w http.ResponseWriter, r *http.Request) {
	var input handler.RefineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(input.GenerationID) == "" {
		writeError(w, http.StatusBadRequest, "generation_id is required")
		return
	}
	if strings.TrimSpace(input.RefineInstruction) == "" {
		writeError(w, http.StatusBadRequest, "refine_instruction is required")
		return
	}

	output, err := a.handler.Refine(r.Context(), input)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Error("refinement failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (a *API) generation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := a.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "generation not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *API) history(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	lineage := a.store.Lineage(id)
	if len(lineage) == 0 {
		writeError(w, http.StatusNotFound, "generation not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": lineage})
}

func validateGenerate(input handler.GenerateInput) string {
	if strings.TrimSpace(input.Theme) == "" {
		return "theme is required"
	}
	if len(input.Styles) == 0 {
		return "at least one style is required"
	}
	for _, id := range input.Styles {
		if _, ok := catalog.StyleByID(id); !ok {
			return "unknown style: " + id
		}
	}
	if input.Size != "" {
		if _, ok := catalog.SizeByID(input.Size); !ok {
			return "unknown size: " + input.Size
		}
	}
	if input.StyleStrength != 0 && (input.StyleStrength < 0.1 || input.StyleStrength > 1.0) {
		return "style_strength must be between 0.1 and 1.0"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
