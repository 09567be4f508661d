package artifact

import (
	"fmt"
	"math"
)

// LinearRegressor predicts coef·x + intercept
type LinearRegressor struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func (r *LinearRegressor) validate(width int) error {
	if len(r.Coef) != width {
		return fmt.Errorf("linear regressor has %d coefficients, transformer emits %d features", len(r.Coef), width)
	}
	if !allFinite(r.Coef) || !isFinite(r.Intercept) {
		return fmt.Errorf("linear regressor has non-finite parameters")
	}
	return nil
}

// Predict returns the regression estimate for one transformed row
func (r *LinearRegressor) Predict(x []float64) (float64, error) {
	if len(x) != len(r.Coef) {
		return 0, &ShapeError{Model: "regressor", Want: len(r.Coef), Got: len(x)}
	}
	y := dot(r.Coef, x) + r.Intercept
	if !isFinite(y) {
		return 0, fmt.Errorf("regressor produced a non-finite estimate")
	}
	return y, nil
}

// LogisticClassifier is a fitted logistic regression.
// With two classes and a single coefficient row the row scores classes[1],
// otherwise there is one row per class and the highest score wins.
type LogisticClassifier struct {
	Classes   []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

func (c *LogisticClassifier) validate(width int) error {
	if len(c.Classes) < 2 {
		return fmt.Errorf("logistic classifier needs at least 2 classes, got %d", len(c.Classes))
	}
	rows := len(c.Classes)
	if len(c.Classes) == 2 && len(c.Coef) == 1 {
		rows = 1
	}
	if len(c.Coef) != rows || len(c.Intercept) != rows {
		return fmt.Errorf("logistic classifier has %d coefficient rows and %d intercepts, want %d", len(c.Coef), len(c.Intercept), rows)
	}
	for i, row := range c.Coef {
		if len(row) != width {
			return fmt.Errorf("logistic classifier row %d has %d coefficients, transformer emits %d features", i, len(row), width)
		}
		if !allFinite(row) {
			return fmt.Errorf("logistic classifier row %d has non-finite coefficients", i)
		}
	}
	if !allFinite(c.Intercept) {
		return fmt.Errorf("logistic classifier has non-finite intercepts")
	}
	return nil
}

// Predict returns the most likely class label
func (c *LogisticClassifier) Predict(x []float64) (string, error) {
	width := len(c.Coef[0])
	if len(x) != width {
		return "", &ShapeError{Model: "classifier", Want: width, Got: len(x)}
	}

	if len(c.Coef) == 1 {
		if dot(c.Coef[0], x)+c.Intercept[0] > 0 {
			return c.Classes[1], nil
		}
		return c.Classes[0], nil
	}

	best, bestScore := 0, math.Inf(-1)
	for i, row := range c.Coef {
		score := dot(row, x) + c.Intercept[i]
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return c.Classes[best], nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
