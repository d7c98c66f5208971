package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kezzyngotho/aura/internal/analytics"
	"github.com/kezzyngotho/aura/internal/classify"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTemplatesCommand(t *testing.T) {
	out, err := execute(t, "templates")
	require.NoError(t, err)

	for _, tmpl := range classify.Templates() {
		assert.Contains(t, out, tmpl.Name)
	}
}

func TestAnalyticsCommand_MemoryStore(t *testing.T) {
	t.Setenv("KV_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "analytics", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Last 3 days")
	assert.Contains(t, out, "Total queries")
}

func TestMigrateCommand_RejectsMemory(t *testing.T) {
	t.Setenv("KV_DRIVER", "memory")

	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "nothing to migrate")
}

func TestRenderMetrics(t *testing.T) {
	out := renderMetrics(&analytics.Metrics{
		Days:          7,
		TotalQueries:  12,
		TopCategories: []analytics.CategoryCount{{Category: "learning", Count: 5}},
	})

	assert.Contains(t, out, "Top categories")
	assert.Contains(t, out, "1. learning")
}

func TestRenderResult(t *testing.T) {
	tmpl := classify.TemplateFor(classify.DefaultSquadType)
	out := renderResult(&classify.Result{
		Kind:     classify.KindSquadMatch,
		Message:  "Ready to jump in?",
		Template: &tmpl,
	})

	assert.Contains(t, out, tmpl.Name)
	assert.Contains(t, out, "Ready to jump in?")
}
