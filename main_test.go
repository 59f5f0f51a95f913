package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/database"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	t.Setenv("LLM_API_KEY", "")
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yml")}, args...))
	require.NoError(t, root.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "complaint-priority dev\n", runCommand(t, "version"))
}

func TestClassifyCommand(t *testing.T) {
	out := runCommand(t, "classify", "--text", "Burst water main flooding the street", "--category", "water")

	assert.Regexp(t, `Priority\s+│\s+high`, out)
	assert.Regexp(t, `Stage\s+│\s+category_pattern`, out)
	assert.Regexp(t, `Pattern\s+│\s+burst_pipe`, out)
}

func TestClassifyCommand_TrivialText(t *testing.T) {
	out := runCommand(t, "classify", "--text", "hello")

	assert.Regexp(t, `Priority\s+│\s+low`, out)
	assert.Regexp(t, `Stage\s+│\s+trivial`, out)
	assert.NotContains(t, out, "Model answer")
}

func TestMigrateCommand_RejectsUnknownDirection(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"migrate", "sideways"})
	assert.Error(t, root.Execute())
}

func TestMigrateCommand_RequiresDatabase(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "")
	root := newRootCommand()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yml"), "migrate", "up"})
	assert.ErrorIs(t, root.Execute(), database.ErrNotConfigured)
}
