package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/recommend"
	"github.com/abhisek/pathwise/internal/store"
)

const analystRecord = `{
  "id": "u-analyst",
  "archetype": "analyst",
  "completedScenarios": [],
  "growthAreas": []
}`

// resetFlags restores every flag in the tree to its default; cobra keeps
// parsed values on the package-level commands between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type harness struct {
	t  *testing.T
	db string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return &harness{t: t, db: filepath.Join(dir, "pathwise.db")}
}

// run executes the root command with --db and --plain prepended.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--db", h.db, "--plain"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "pathwise %s", strings.Join(args, " "))
	return out
}

func (h *harness) importAnalyst() {
	h.t.Helper()
	path := filepath.Join(h.t.TempDir(), "analyst.json")
	require.NoError(h.t, os.WriteFile(path, []byte(analystRecord), 0o644))
	out := h.mustRun("record", "import", path)
	assert.Contains(h.t, out, "imported learner u-analyst")
}

func TestCatalogList(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("catalog", "list")
	assert.Contains(t, out, "active-listening")
	assert.Contains(t, out, "data-storytelling")
}

func TestCatalogValidateBuiltIn(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("catalog", "validate")
	assert.Contains(t, out, "ok: catalog v1.0.0")
}

func TestRecordImportListExport(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()

	out := h.mustRun("record", "list")
	assert.Contains(t, out, "u-analyst")
	assert.Contains(t, out, "analyst")

	out = h.mustRun("record", "export", "u-analyst")
	assert.Contains(t, out, `"id":"u-analyst"`)
}

func TestRecommendUnknownLearner(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("recommend", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `learner "nobody" not found`)
}

func TestRecommendJSON(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()

	out := h.mustRun("recommend", "u-analyst", "--json", "--limit", "3")
	var recs []recommend.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 3)
	assert.Equal(t, "clear-expression", recs[0].SkillID)
}

func TestProgressIsReplayed(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()

	out := h.mustRun("progress", "u-analyst", "clear-expression", "competent", "70")
	assert.Contains(t, out, "clear-expression: competent, confidence 70")

	// A fresh invocation rebuilds the profile and replays the stored event.
	out = h.mustRun("profile", "u-analyst", "--json")
	var p profile.LearnerProfile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	st := p.State("clear-expression")
	assert.Equal(t, profile.LevelCompetent, st.Level)
	assert.Equal(t, 70, st.Confidence)
}

func TestStaleProgressNeedsRefresh(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()

	s, err := store.Open(h.db)
	require.NoError(t, err)
	_, err = s.ProgressRepo().Append(context.Background(), store.ProgressEvent{
		LearnerID:  "u-analyst",
		SkillID:    "empathy",
		Level:      profile.LevelDeveloping,
		Confidence: 50,
		Timestamp:  time.Now().AddDate(0, 0, -90),
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	out := h.mustRun("recommend", "u-analyst", "--json", "--limit", "20")
	var recs []recommend.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	var reinforced bool
	for _, r := range recs {
		if r.SkillID == "empathy" && r.Pathway == recommend.PathwayReinforcement {
			reinforced = true
		}
	}
	assert.True(t, reinforced, "replayed progress older than the refresh threshold")
}

func TestProgressRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()

	_, err := h.run("progress", "u-analyst", "clear-expression", "expert", "70")
	assert.ErrorIs(t, err, profile.ErrUnknownLevel)

	_, err = h.run("progress", "u-analyst", "juggling", "competent", "70")
	assert.Error(t, err)

	_, err = h.run("progress", "u-analyst", "clear-expression", "competent", "lots")
	assert.Error(t, err)
}

func TestPathway(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()

	out := h.mustRun("pathway", "u-analyst", "empathy")
	assert.Contains(t, out, "Pathway to Empathy")
	assert.Contains(t, out, "  1. Active Listening")
	assert.Contains(t, out, "  3. Empathy")

	_, err := h.run("pathway", "u-analyst", "juggling")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `skill "juggling" is not in catalog`)
}

func TestExplainFailureDoesNotFailCommand(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()
	t.Setenv("PATHWISE_LLM_PROVIDER", "mock")
	t.Setenv("PATHWISE_LLM_RETRY_MAX_ATTEMPTS", "1")

	// The mock provider has no canned replies, so the briefing fails.
	out := h.mustRun("recommend", "u-analyst", "--explain")
	assert.Contains(t, out, "Next up")
	assert.Contains(t, out, "briefing unavailable")

	out = h.mustRun("llm", "list")
	assert.Contains(t, out, "recommendation-briefing")
	assert.Contains(t, out, "✗")

	out = h.mustRun("llm", "stats")
	assert.Contains(t, out, "recommendation-briefing")
	assert.Contains(t, out, "Estimated cost (1 unpriced)")
}

func TestSnapshotSaveAndShow(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()

	_, err := h.run("snapshot", "show", "u-analyst")
	require.Error(t, err)

	out := h.mustRun("snapshot", "save", "u-analyst")
	assert.Contains(t, out, "saved snapshot")

	out = h.mustRun("snapshot", "show", "u-analyst", "--json")
	var snap store.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "u-analyst", snap.LearnerID)
	assert.Equal(t, "v1.0.0", snap.Data.CatalogVersion)
	assert.Equal(t, "analyst", snap.Data.Profile.Archetype)
}

func TestCatalogDowngradeGuard(t *testing.T) {
	h := newHarness(t)
	h.importAnalyst()
	h.mustRun("profile", "u-analyst")

	raw, err := os.ReadFile(filepath.Join("..", "internal", "skillgraph", "catalog.yaml"))
	require.NoError(t, err)
	older := strings.Replace(string(raw), "version: v1.0.0", "version: v0.9.0", 1)
	path := filepath.Join(t.TempDir(), "older.yaml")
	require.NoError(t, os.WriteFile(path, []byte(older), 0o644))

	_, err = h.run("--catalog", path, "profile", "u-analyst")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--allow-downgrade")

	h.mustRun("--catalog", path, "--allow-downgrade", "profile", "u-analyst")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("version")
	assert.Contains(t, out, "pathwise (devel)")
	assert.Contains(t, out, "built-in catalog v1.0.0")
}
