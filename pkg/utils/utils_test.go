package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Consulting":                "consulting",
		"AI Strategy & Roadmaps":    "ai-strategy-roadmaps",
		"  Computer   Vision  ":     "computer-vision",
		"Café Análisis":             "cafe-analisis",
		"--already-slugged--":       "already-slugged",
		"MLOps / Data Engineering!": "mlops-data-engineering",
		"":                          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
