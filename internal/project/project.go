// Package project persists floor plans and application settings as JSON
// files under the user's home directory.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/obravim/floortrace/internal/model"
)

// FileVersion is written into every saved project so future format
// changes can be migrated.
const FileVersion = "1.0.0"

// Project is a saved floor plan: the editor state plus bookkeeping
// metadata. SourceImage is the path of the plan image the trace was made
// from, kept so the canvas background can be restored on load.
type Project struct {
	Version     string             `json:"version"`
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	SourceImage string             `json:"source_image,omitempty"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
	State       *model.EditorState `json:"state"`
}

// New creates an empty project around a fresh editor state.
func New(name string) *Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Project{
		Version:   FileVersion,
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		State:     model.NewEditorState(model.DefaultScale()),
	}
}

// Save writes the project to the given path, stamping UpdatedAt and
// creating any missing parent directories.
func Save(path string, p *Project) error {
	if p.State == nil {
		return fmt.Errorf("project has no state")
	}
	p.Version = FileVersion
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project file and normalizes the contained state so the
// editor can rely on its invariants: maps are never nil, the scale is
// valid, and every derived dimension matches the stored geometry.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("invalid project file: missing version field")
	}
	if p.State == nil {
		return nil, fmt.Errorf("invalid project file: missing state")
	}

	st := p.State
	if st.Rooms == nil {
		st.Rooms = make(map[string]*model.Room)
	}
	if st.Windoors == nil {
		st.Windoors = make(map[string]*model.Opening)
	}
	if !st.Scale.Valid() {
		st.Scale = model.DefaultScale()
	}
	// Stored dimensions may predate a format or scale change; geometry is
	// the source of truth.
	st.SetScale(st.Scale)

	return &p, nil
}
