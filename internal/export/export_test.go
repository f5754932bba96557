package export

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/bfarr/prism/internal/cube"
	"github.com/bfarr/prism/internal/hist"
)

func chain(t *testing.T) (*cube.SampleCube, *hist.Binning) {
	t.Helper()
	rng := rand.New(rand.NewSource(11))
	c, err := cube.New(6, 40, 2)
	if err != nil {
		t.Fatal(err)
	}
	for ts := 0; ts < 6; ts++ {
		spread := 0.5 + float64(ts)/6
		for w := 0; w < 40; w++ {
			c.Set(ts, w, 0, spread*rng.NormFloat64())
			c.Set(ts, w, 1, 2+spread*rng.NormFloat64())
		}
	}
	b, err := hist.Compute(c, 15)
	if err != nil {
		t.Fatal(err)
	}
	return c, b
}

func TestTerminal(t *testing.T) {
	c, b := chain(t)

	out, err := Terminal(c, b, []string{"x", "y"}, 3, 60)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "x (frame 3)") || !strings.Contains(out, "y (frame 3)") {
		t.Error("marginal captions missing")
	}
	if !strings.Contains(out, "y vs x") {
		t.Error("pairwise panel missing")
	}
}

func TestTerminal_Validation(t *testing.T) {
	c, b := chain(t)

	if _, err := Terminal(c, b, nil, 6, 60); err == nil {
		t.Error("frame past the end should fail")
	}
	if _, err := Terminal(c, b, []string{"only"}, 0, 60); err == nil {
		t.Error("short label list should fail")
	}
}

func TestSVG(t *testing.T) {
	c, b := chain(t)

	out, err := SVG(c, b, []float64{0, 2}, 5, 120)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "<svg") {
		t.Error("not an svg document")
	}
	if strings.Count(out, "<circle") != 40 {
		t.Errorf("scatter panel has %d points, want 40", strings.Count(out, "<circle"))
	}
	if !strings.Contains(out, `stroke="#4682b4"`) {
		t.Error("truth lines missing")
	}
	if !strings.Contains(out, `width="240"`) {
		t.Error("document size wrong for 2x120px panels")
	}
}

func TestSVG_Validation(t *testing.T) {
	c, b := chain(t)
	if _, err := SVG(c, b, []float64{1}, 0, 120); err == nil {
		t.Error("short truth list should fail")
	}
	if _, err := SVG(c, b, nil, -1, 120); err == nil {
		t.Error("negative frame should fail")
	}
}
