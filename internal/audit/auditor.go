package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Auditor snapshots incoming request payloads to disk before they are
// applied, so a bad restore can be replayed or inspected later.
type Auditor struct {
	Dir string
}

func NewAuditor(dir string) *Auditor {
	return &Auditor{Dir: dir}
}

// SaveJSON writes the payload as pretty-printed JSON under a random
// filename and returns that filename.
func (a *Auditor) SaveJSON(data any) (string, error) {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	filename := uuid.New().String() + ".json"
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := os.WriteFile(filepath.Join(a.Dir, filename), payload, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}
	return filename, nil
}
