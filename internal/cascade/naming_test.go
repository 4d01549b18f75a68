package cascade

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisambiguate(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		siblings []string
		want     string
	}{
		{
			name:     "no conflict",
			source:   "Week 1",
			siblings: []string{"Week 1"},
			want:     "Week 1 (Copy)",
		},
		{
			name:     "first copy taken",
			source:   "Week 1",
			siblings: []string{"Week 1", "Week 1 (Copy)"},
			want:     "Week 1 (Copy 2)",
		},
		{
			name:     "counter keeps climbing",
			source:   "Week 1",
			siblings: []string{"Week 1", "Week 1 (Copy)", "Week 1 (Copy 2)", "Week 1 (Copy 3)"},
			want:     "Week 1 (Copy 4)",
		},
		{
			name:     "duplicating a duplicate never reuses an existing name",
			source:   "Leg Day (Copy)",
			siblings: []string{"Leg Day", "Leg Day (Copy)"},
			want:     "Leg Day (Copy) (Copy)",
		},
		{
			name:     "no siblings at all",
			source:   "Deload",
			siblings: nil,
			want:     "Deload (Copy)",
		},
		{
			name:     "gap in counters is not reused out of order",
			source:   "Push",
			siblings: []string{"Push (Copy)", "Push (Copy 3)"},
			want:     "Push (Copy 2)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Disambiguate(tc.source, tc.siblings))
		})
	}
}
