package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWarnings(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name       string
		rows       int
		categories int
		regions    int
		wantCount  int
	}{
		{name: "healthy corpus", rows: 500, categories: 8, regions: 4, wantCount: 0},
		{name: "low volume", rows: 30, categories: 8, regions: 4, wantCount: 1},
		{name: "few categories", rows: 500, categories: 2, regions: 4, wantCount: 1},
		{name: "single region", rows: 500, categories: 8, regions: 1, wantCount: 1},
		{name: "everything thin", rows: 10, categories: 1, regions: 1, wantCount: 3},
		{name: "thresholds are exclusive", rows: 100, categories: 3, regions: 2, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ComputeWarnings(tt.rows, tt.categories, tt.regions, opts)
			assert.Len(t, warnings, tt.wantCount)
		})
	}
}

func TestComputeWarningsMessages(t *testing.T) {
	warnings := ComputeWarnings(30, 1, 1, DefaultOptions())
	require.Len(t, warnings, 3)
	assert.Contains(t, string(warnings[0]), "minimum recommended transaction volume not met")
	assert.Contains(t, string(warnings[1]), "distinct product categories")
	assert.Contains(t, string(warnings[2]), "distinct regions")
}
