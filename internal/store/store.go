package store

import (
	"errors"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/image"
)

// ErrNotFound is returned when a referenced generation id does not exist.
var ErrNotFound = errors.New("generation not found")

// Request is the structured user request, preserved verbatim on every record
// so refinements can reuse it.
type Request struct {
	Theme            string   `json:"theme"`
	Styles           []string `json:"styles"`
	Size             string   `json:"size"`
	Purpose          string   `json:"purpose,omitempty"`
	ExtraDescription string   `json:"extra_description,omitempty"`
	StyleStrength    float64  `json:"style_strength"`
}

// Record is one completed generation. Records are immutable once created and
// are never deleted; a non-empty ParentID marks a refinement of that parent.
type Record struct {
	ID                string    `json:"generation_id"`
	ImageURL          string    `json:"image_url"`
	OptimizedPrompt   string    `json:"optimized_prompt"`
	OriginalRequest   Request   `json:"original_request"`
	RefineInstruction string    `json:"refine_instruction,omitempty"`
	Seed              *int64    `json:"seed,omitempty"`
	Model             string    `json:"model,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	ParentID          string    `json:"parent_id,omitempty"`
}

type Store interface {
	CreateGeneration(req Request, res image.Result, optimizedPrompt string) Record
	// CreateRefinement links a new record to parentID, copying the parent's
	// structured request. Fails with ErrNotFound when the parent is absent.
	CreateRefinement(parentID, instruction string, res image.Result, refinedPrompt string) (Record, error)
	Get(id string) (Record, bool)
	// Lineage returns the ancestor chain root-first up to and including id,
	// followed by the immediate children of id (direct refinements only, not
	// the full subtree). Empty when id is unknown.
	Lineage(id string) []Record
	// Recent returns up to limit records, newest first.
	Recent(limit int) []Record
}
