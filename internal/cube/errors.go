package cube

import "fmt"

// DimensionError reports a per-parameter list whose length does not
// match the cube's parameter count.
type DimensionError struct {
	What string
	Got  int
	Want int
}

func (e DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: %d %s for %d parameters", e.Got, e.What, e.Want)
}

// ValidateLabels checks an optional label list against the cube's
// parameter count. Nil is always valid.
func (c *SampleCube) ValidateLabels(labels []string) error {
	if labels != nil && len(labels) != c.dim {
		return DimensionError{What: "labels", Got: len(labels), Want: c.dim}
	}
	return nil
}

// ValidateTruths checks an optional truth-value list against the cube's
// parameter count. Nil is always valid.
func (c *SampleCube) ValidateTruths(truths []float64) error {
	if truths != nil && len(truths) != c.dim {
		return DimensionError{What: "truths", Got: len(truths), Want: c.dim}
	}
	return nil
}
