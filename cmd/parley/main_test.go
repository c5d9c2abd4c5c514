package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectYAML = `
savedWithVersion: 1.7
sequences:
  - id: s1
    name: Intro
    nodes:
      - id: n1
        name: Start
        lines:
          - id: l1
            character: Lilly
            dialogue: Hello
          - id: l2
            condition: hungry
            goToNodeName: Kitchen
            goToNodeId: n2
        responses:
          - id: r1
            prompt: Bye
            goToNodeName: END
      - id: n2
        name: Kitchen
        lines:
          - id: l3
            mutation: fed = true
      - id: n3
        name: Attic
`

func writeProject(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(projectYAML), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PARLEY_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	project := writeProject(t)

	out, err := run(t, "Lilly: Hi\n-> Kitchen\n-> Nowhere", "parse", "--project", project)
	require.NoError(t, err)

	var records []domain.LineRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "Lilly", records[0].Character)
	assert.Equal(t, "n2", records[1].TargetID)
	assert.Empty(t, records[2].TargetID)
}

func TestParseCommand_Responses(t *testing.T) {
	out, err := run(t, "Leave\n\n[if x] Stay -> Start", "parse", "--responses", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "goToNodeName: END")
	assert.Contains(t, out, "condition: x")
}

func TestParseCommand_Malformed(t *testing.T) {
	_, err := run(t, "ok\n[do broken", "parse")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedConditional)
	assert.Equal(t, 2, domain.LineNumber(err))
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, "", "render", writeProject(t), "Start")
	require.NoError(t, err)
	assert.Equal(t, "Lilly: Hello\n[if hungry] -> Kitchen\n\nBye -> END\n", out)
}

func TestShowCommand(t *testing.T) {
	out, err := run(t, "", "show", writeProject(t), "n1")
	require.NoError(t, err)
	assert.Contains(t, out, "# Start")
	assert.Contains(t, out, "**Lilly:** Hello")
}

func TestGraphCommand(t *testing.T) {
	out, err := run(t, "", "graph", writeProject(t), "--select", "Kitchen")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD"))
	assert.Contains(t, out, "classDef selected")
}

func TestValidateCommand(t *testing.T) {
	project := writeProject(t)

	out, err := run(t, "", "validate", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Graph is valid!")

	_, err = run(t, "", "validate", project, "--start", "Start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestLinksCommand(t *testing.T) {
	out, err := run(t, "", "links", writeProject(t), "Kitchen")
	require.NoError(t, err)
	assert.Equal(t, "outgoing:\nincoming:\n  l2 <- Start\n", out)
}

func TestFilterCommand(t *testing.T) {
	out, err := run(t, "", "filter", writeProject(t), "FED")
	require.NoError(t, err)
	assert.Equal(t, "n2\tKitchen\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "parley version")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "version", "--log-level", "loud")
	assert.Error(t, err)
}
