package noise

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		wantErr bool
	}{
		{"Simplex", KindSimplex, false},
		{"Perlin", KindPerlin, false},
		{"Empty defaults to simplex", "", false},
		{"Unknown", "worley", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewField(tt.kind, 1)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownKind))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, f)
		})
	}
}

// TestFieldBoundsAndDeterminism samples a grid and checks [0,1] and repeatability
func TestFieldBoundsAndDeterminism(t *testing.T) {
	for _, kind := range []Kind{KindSimplex, KindPerlin} {
		t.Run(string(kind), func(t *testing.T) {
			a, err := NewField(kind, 2024)
			require.NoError(t, err)
			b, err := NewField(kind, 2024)
			require.NoError(t, err)

			for x := -3.0; x < 3; x += 0.37 {
				for y := -3.0; y < 3; y += 0.41 {
					v := a.Eval(x, y)
					assert.GreaterOrEqual(t, v, 0.0)
					assert.LessOrEqual(t, v, 1.0)
					assert.Equal(t, v, b.Eval(x, y))
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("perlin")
	require.NoError(t, err)
	assert.Equal(t, KindPerlin, k)

	_, err = ParseKind("value")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
