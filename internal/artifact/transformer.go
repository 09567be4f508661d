package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"reiadvisor/internal/model"
)

// Step kinds
const (
	StepOneHot      = "onehot"
	StepScale       = "scale"
	StepPassthrough = "passthrough"
)

// Unknown-category policies for one-hot steps
const (
	HandleUnknownError  = "error"
	HandleUnknownIgnore = "ignore"
)

// ColumnTransformer turns a FeatureRecord into the numeric vector both models
// were fitted on. Steps run in order and each appends its output columns.
type ColumnTransformer struct {
	Version int             `json:"version"`
	Steps   []TransformStep `json:"steps"`

	width int
	index []map[string]int
}

// TransformStep encodes a single record column
type TransformStep struct {
	Column        string   `json:"column"`
	Kind          string   `json:"kind"`
	Categories    []string `json:"categories,omitempty"`
	HandleUnknown string   `json:"handle_unknown,omitempty"`
	Mean          float64  `json:"mean,omitempty"`
	Scale         float64  `json:"scale,omitempty"`
}

// DecodeTransformer parses and validates a transformer artifact
func DecodeTransformer(data []byte) (*ColumnTransformer, error) {
	var t ColumnTransformer
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("invalid transformer JSON: %w", err)
	}
	if err := t.init(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *ColumnTransformer) init() error {
	if len(t.Steps) == 0 {
		return fmt.Errorf("transformer has no steps")
	}

	t.width = 0
	t.index = make([]map[string]int, len(t.Steps))

	for i := range t.Steps {
		step := &t.Steps[i]
		if !model.IsFeatureColumn(step.Column) {
			return fmt.Errorf("step %d: column %q is not part of the feature record", i, step.Column)
		}

		switch step.Kind {
		case StepOneHot:
			if len(step.Categories) == 0 {
				return fmt.Errorf("step %d (%s): one-hot step has no categories", i, step.Column)
			}
			if step.HandleUnknown == "" {
				step.HandleUnknown = HandleUnknownError
			}
			if step.HandleUnknown != HandleUnknownError && step.HandleUnknown != HandleUnknownIgnore {
				return fmt.Errorf("step %d (%s): unsupported handle_unknown %q", i, step.Column, step.HandleUnknown)
			}
			idx := make(map[string]int, len(step.Categories))
			for j, c := range step.Categories {
				if _, dup := idx[c]; dup {
					return fmt.Errorf("step %d (%s): duplicate category %q", i, step.Column, c)
				}
				idx[c] = j
			}
			t.index[i] = idx
			t.width += len(step.Categories)

		case StepScale:
			if model.IsCategorical(step.Column) {
				return fmt.Errorf("step %d: %w", i, &ColumnTypeError{Column: step.Column, Want: "numeric"})
			}
			if math.IsNaN(step.Mean) || math.IsInf(step.Mean, 0) || math.IsNaN(step.Scale) || math.IsInf(step.Scale, 0) {
				return fmt.Errorf("step %d (%s): mean and scale must be finite", i, step.Column)
			}
			// zero variance columns are left unscaled
			if step.Scale == 0 {
				step.Scale = 1
			}
			t.width++

		case StepPassthrough:
			if model.IsCategorical(step.Column) {
				return fmt.Errorf("step %d: %w", i, &ColumnTypeError{Column: step.Column, Want: "numeric"})
			}
			t.width++

		default:
			return fmt.Errorf("step %d (%s): unknown step kind %q", i, step.Column, step.Kind)
		}
	}

	return nil
}

// Width returns the number of output features
func (t *ColumnTransformer) Width() int {
	return t.width
}

// Transform encodes one record. It never mutates the transformer.
func (t *ColumnTransformer) Transform(rec *model.FeatureRecord) ([]float64, error) {
	out := make([]float64, 0, t.width)

	for i := range t.Steps {
		step := &t.Steps[i]

		switch step.Kind {
		case StepOneHot:
			value, ok := rec.Categorical(step.Column)
			if !ok {
				num, _ := rec.Numeric(step.Column)
				value = strconv.FormatFloat(num, 'f', -1, 64)
			}
			encoded := make([]float64, len(step.Categories))
			j, known := t.index[i][value]
			switch {
			case known:
				encoded[j] = 1
			case step.HandleUnknown == HandleUnknownError:
				return nil, &UnknownCategoryError{Column: step.Column, Value: value}
			}
			out = append(out, encoded...)

		case StepScale:
			num, ok := rec.Numeric(step.Column)
			if !ok {
				return nil, &ColumnTypeError{Column: step.Column, Want: "numeric"}
			}
			out = append(out, (num-step.Mean)/step.Scale)

		case StepPassthrough:
			num, ok := rec.Numeric(step.Column)
			if !ok {
				return nil, &ColumnTypeError{Column: step.Column, Want: "numeric"}
			}
			out = append(out, num)
		}
	}

	return out, nil
}

// Categories returns the fitted vocabulary of a one-hot encoded column
func (t *ColumnTransformer) Categories(column string) ([]string, bool) {
	for _, step := range t.Steps {
		if step.Column == column && step.Kind == StepOneHot {
			cats := make([]string, len(step.Categories))
			copy(cats, step.Categories)
			return cats, true
		}
	}
	return nil, false
}
