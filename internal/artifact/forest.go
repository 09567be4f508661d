package artifact

import (
	"fmt"
)

// Forest aggregation modes
const (
	AggregateMean = "mean" // random forest
	AggregateSum  = "sum"  // gradient boosting
)

// Tree is a fitted binary decision tree in flat array form.
// Leaves have Left == Right == -1; internal nodes send x[Feature] <= Threshold left.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode is one node of a Tree
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

func (n *TreeNode) isLeaf() bool {
	return n.Left == -1 && n.Right == -1
}

// validate checks node references. Children must come after their parent,
// which also guarantees evaluation terminates.
func (t *Tree) validate(width, valueLen int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.isLeaf() {
			if len(n.Value) != valueLen {
				return fmt.Errorf("leaf %d has %d values, want %d", i, len(n.Value), valueLen)
			}
			if !allFinite(n.Value) {
				return fmt.Errorf("leaf %d has non-finite values", i)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d splits on feature %d, transformer emits %d features", i, n.Feature, width)
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
		if !isFinite(n.Threshold) {
			return fmt.Errorf("node %d has a non-finite threshold", i)
		}
	}
	return nil
}

func (t *Tree) leaf(x []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.isLeaf() {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// ForestRegressor averages or sums scalar tree outputs
type ForestRegressor struct {
	Trees     []Tree  `json:"trees"`
	Aggregate string  `json:"aggregate"`
	BaseScore float64 `json:"base_score"`

	width int
}

func (r *ForestRegressor) validate(width int) error {
	if len(r.Trees) == 0 {
		return fmt.Errorf("forest regressor has no trees")
	}
	if r.Aggregate == "" {
		r.Aggregate = AggregateMean
	}
	if r.Aggregate != AggregateMean && r.Aggregate != AggregateSum {
		return fmt.Errorf("forest regressor has unknown aggregate %q", r.Aggregate)
	}
	for i := range r.Trees {
		if err := r.Trees[i].validate(width, 1); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	r.width = width
	return nil
}

// Predict returns the ensemble estimate for one transformed row
func (r *ForestRegressor) Predict(x []float64) (float64, error) {
	if len(x) != r.width {
		return 0, &ShapeError{Model: "regressor", Want: r.width, Got: len(x)}
	}
	var sum float64
	for i := range r.Trees {
		sum += r.Trees[i].leaf(x)[0]
	}
	if r.Aggregate == AggregateMean {
		sum /= float64(len(r.Trees))
	}
	y := r.BaseScore + sum
	if !isFinite(y) {
		return 0, fmt.Errorf("regressor produced a non-finite estimate")
	}
	return y, nil
}

// ForestClassifier averages per-class leaf distributions and picks the
// highest; ties go to the earlier class.
type ForestClassifier struct {
	Classes []string `json:"classes"`
	Trees   []Tree   `json:"trees"`

	width int
}

func (c *ForestClassifier) validate(width int) error {
	if len(c.Classes) < 2 {
		return fmt.Errorf("forest classifier needs at least 2 classes, got %d", len(c.Classes))
	}
	if len(c.Trees) == 0 {
		return fmt.Errorf("forest classifier has no trees")
	}
	for i := range c.Trees {
		if err := c.Trees[i].validate(width, len(c.Classes)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	c.width = width
	return nil
}

// Predict returns the most likely class label
func (c *ForestClassifier) Predict(x []float64) (string, error) {
	if len(x) != c.width {
		return "", &ShapeError{Model: "classifier", Want: c.width, Got: len(x)}
	}
	votes := make([]float64, len(c.Classes))
	for i := range c.Trees {
		for j, v := range c.Trees[i].leaf(x) {
			votes[j] += v
		}
	}
	best := 0
	for j := 1; j < len(votes); j++ {
		if votes[j] > votes[best] {
			best = j
		}
	}
	return c.Classes[best], nil
}
