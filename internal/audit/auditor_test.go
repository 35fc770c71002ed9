package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditor_SaveJSON(t *testing.T) {
	dir := t.TempDir()
	auditor := NewAuditor(filepath.Join(dir, "audit"))

	filename, err := auditor.SaveJSON(map[string]any{"announcements": []any{}})
	require.NoError(t, err)
	assert.NotEmpty(t, filename)

	data, err := os.ReadFile(filepath.Join(auditor.Dir, filename))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "announcements")
}
