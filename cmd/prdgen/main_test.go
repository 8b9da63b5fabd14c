package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/prdforge/prdforge/backend/go-services/internal/ideas"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerateOfflineMarkdown(t *testing.T) {
	out, errOut, err := run(t, "generate", "--idea", "Dog Walker Hub", "--offline")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "# Dog Walker Hub\n"))
	require.Contains(t, out, "## 1. Overview")
	require.Contains(t, errOut, "source: fallback")
}

func TestGenerateOfflineJSON(t *testing.T) {
	out, _, err := run(t, "generate", "-i", "Dog Walker Hub", "--offline", "--format", "json")
	require.NoError(t, err)
	require.True(t, prd.Validate([]byte(out)))
	require.Equal(t, "Dog Walker Hub", gjson.Get(out, "startup_name").String())
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, _, err := run(t, "generate", "--offline")
	require.Error(t, err)

	_, _, err = run(t, "generate", "--idea", "  ", "--offline")
	require.ErrorIs(t, err, prd.ErrInvalidInput)

	_, _, err = run(t, "generate", "--idea", "x", "--offline", "--format", "pdf")
	require.ErrorIs(t, err, prd.ErrInvalidInput)
}

func TestGenerateWithoutCredentialsFails(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	_, _, err := run(t, "generate", "--idea", "x")
	require.ErrorIs(t, err, prd.ErrConfiguration)
}

func TestIdeaCommand(t *testing.T) {
	out, _, err := run(t, "idea")
	require.NoError(t, err)
	require.Contains(t, ideas.All(), strings.TrimSpace(out))
}
