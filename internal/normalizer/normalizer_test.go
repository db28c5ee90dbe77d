package normalizer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalize(t *testing.T) {
	teamA, teamB, teamC := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name          string
		raw           map[uuid.UUID]*float64
		lowerIsBetter bool
		want          map[uuid.UUID]*float64
	}{
		{
			name: "simple min-max spread",
			raw: map[uuid.UUID]*float64{
				teamA: floatPtr(0),
				teamB: floatPtr(50),
				teamC: floatPtr(100),
			},
			want: map[uuid.UUID]*float64{
				teamA: floatPtr(0),
				teamB: floatPtr(0.5),
				teamC: floatPtr(1),
			},
		},
		{
			name: "lower is better inverts the scale",
			raw: map[uuid.UUID]*float64{
				teamA: floatPtr(0),
				teamB: floatPtr(100),
			},
			lowerIsBetter: true,
			want: map[uuid.UUID]*float64{
				teamA: floatPtr(1),
				teamB: floatPtr(0),
			},
		},
		{
			name: "degenerate range falls back to 0.5",
			raw: map[uuid.UUID]*float64{
				teamA: floatPtr(42),
				teamB: floatPtr(42),
			},
			want: map[uuid.UUID]*float64{
				teamA: floatPtr(0.5),
				teamB: floatPtr(0.5),
			},
		},
		{
			name: "nil values stay nil",
			raw: map[uuid.UUID]*float64{
				teamA: floatPtr(10),
				teamB: nil,
			},
			want: map[uuid.UUID]*float64{
				teamA: floatPtr(0.5),
				teamB: nil,
			},
		},
		{
			name: "all nil stays all nil",
			raw: map[uuid.UUID]*float64{
				teamA: nil,
				teamB: nil,
			},
			want: map[uuid.UUID]*float64{
				teamA: nil,
				teamB: nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.lowerIsBetter)
			require.Len(t, got, len(tt.want))
			for id, wantVal := range tt.want {
				gotVal, ok := got[id]
				require.True(t, ok)
				if wantVal == nil {
					assert.Nil(t, gotVal)
					continue
				}
				require.NotNil(t, gotVal)
				assert.InDelta(t, *wantVal, *gotVal, 1e-9)
			}
		})
	}
}
