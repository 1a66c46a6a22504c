package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "  ", "gemini-2.0-flash", time.Second)
	assert.Error(t, err)
}

func TestNewGeminiKeepsModel(t *testing.T) {
	g, err := NewGemini(context.Background(), "test-key", "gemini-2.0-flash", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", g.Model())
}

func TestInsightSchema(t *testing.T) {
	schema := InsightSchema()

	assert.Equal(t, genai.TypeArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.ElementsMatch(t, []string{"title", "description", "type"}, schema.Items.Required)
	assert.Equal(t, []string{"warning", "info", "success"}, schema.Items.Properties["type"].Enum)
}
