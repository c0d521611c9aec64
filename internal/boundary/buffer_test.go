package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func TestBuffer_Periodic(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		startWrap int
		endWrap   int
	}{
		{"no guards", 4, 0, 0},
		{"short guards", 8, 3, 2},
		{"guards equal length", 4, 4, 4},
		{"guards longer than segment", 2, 7, 5},
		{"single sample", 1, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.n, tt.startWrap, tt.endWrap)
			seg := make([]float64, tt.n)
			for i := range seg {
				seg[i] = float64(10 * (i + 1))
			}
			b.Load(seg)

			require.Len(t, b.Data(), tt.startWrap+tt.n+tt.endWrap)
			for p := -tt.startWrap; p < tt.n+tt.endWrap; p++ {
				assert.InDelta(t, seg[mod(p, tt.n)], b.At(p), 0, "position %d", p)
			}
		})
	}
}

func TestBuffer_Example(t *testing.T) {
	b := New(4, 2, 3)
	b.Load([]float64{1, 2, 3, 4})

	assert.Equal(t, []float64{3, 4, 1, 2, 3, 4, 1, 2, 3}, b.Data())
	assert.Equal(t, []float64{4, 1, 2}, b.Window(-1, 2))
}

func TestBuffer_ReloadRewritesGuards(t *testing.T) {
	b := New(2, 2, 2)
	b.Load([]float64{1, 2})
	b.Load([]float64{5, 6})

	assert.Equal(t, []float64{5, 6, 5, 6, 5, 6}, b.Data())
}

func TestBuffer_NegativeGuards(t *testing.T) {
	b := New(3, -2, -1)
	assert.Equal(t, 0, b.StartWrap())
	assert.Equal(t, 0, b.EndWrap())
	assert.Equal(t, 3, b.Len())
}

func TestBuffer_Panics(t *testing.T) {
	assert.Panics(t, func() { New(0, 1, 1) })

	b := New(4, 1, 1)
	assert.Panics(t, func() { b.Load([]float64{1, 2, 3}) })
}
