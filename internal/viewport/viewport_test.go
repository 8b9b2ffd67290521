package viewport

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShift(t *testing.T) {
	tests := []struct {
		name       string
		start      Controller
		delta      int
		length     int
		height     int
		wantFocus  int
		wantOffset int
	}{
		{"down one", Controller{0, 0}, 1, 20, 5, 1, 1},
		{"scroll past window", Controller{4, 4}, 1, 20, 5, 5, 4},
		{"up at top", Controller{0, 0}, -1, 20, 5, 0, 0},
		{"jump to end", Controller{2, 2}, 20, 20, 5, 19, 4},
		{"jump to start", Controller{15, 3}, -20, 20, 5, 0, 0},
		{"page down clamps row", Controller{1, 1}, 5, 20, 5, 6, 4},
		{"short list", Controller{0, 0}, 10, 3, 10, 2, 2},
		{"single item", Controller{0, 0}, 1, 1, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.start
			c.Shift(tt.delta, tt.length, tt.height)
			assert.Equal(t, tt.wantFocus, c.Focus, "focus")
			assert.Equal(t, tt.wantOffset, c.Offset, "offset")
		})
	}
}

func TestMoveToPreservesRelativeScroll(t *testing.T) {
	c := Controller{Focus: 10, Offset: 2}
	c.MoveTo(11, 30, 8)
	assert.Equal(t, 11, c.Focus)
	assert.Equal(t, 3, c.Offset)
	assert.Equal(t, 8, c.Top())
}

func TestClampingHoldsForArbitraryShifts(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for run := 0; run < 200; run++ {
		length := r.Intn(40) + 1
		height := r.Intn(15) + 1
		c := Controller{}
		for step := 0; step < 50; step++ {
			if r.Intn(3) == 0 {
				c.MoveTo(r.Intn(3*length)-length, length, height)
			} else {
				c.Shift(r.Intn(4*length)-2*length, length, height)
			}
			assert.GreaterOrEqual(t, c.Focus, 0)
			assert.Less(t, c.Focus, length)
			assert.GreaterOrEqual(t, c.Offset, 0)
			assert.Less(t, c.Offset, height)
			assert.GreaterOrEqual(t, c.Top(), 0)
		}
	}
}

func TestClick(t *testing.T) {
	c := Controller{Focus: 7, Offset: 3}

	idx, activate := c.Click(3)
	assert.True(t, activate)
	assert.Equal(t, 7, idx)

	idx, activate = c.Click(0)
	assert.False(t, activate)
	assert.Equal(t, 4, idx)

	idx, _ = c.Click(5)
	assert.Equal(t, 9, idx)
}

func TestResetAndWindow(t *testing.T) {
	c := Controller{}
	c.Reset(12, 20, 5)
	assert.Equal(t, 12, c.Focus)
	assert.Equal(t, 4, c.Offset)

	start, end := c.Window(20, 5)
	assert.Equal(t, 8, start)
	assert.Equal(t, 13, end)

	c.Reset(1, 3, 5)
	start, end = c.Window(3, 5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestFitAfterShrink(t *testing.T) {
	c := Controller{Focus: 9, Offset: 4}
	c.Fit(5, 5)
	assert.Equal(t, 4, c.Focus)
	assert.Equal(t, 4, c.Offset)
}
