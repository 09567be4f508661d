package artifact

import (
	"encoding/json"
	"fmt"
)

// Model kinds
const (
	KindLinear   = "linear"
	KindLogistic = "logistic"
	KindForest   = "forest"
)

// Classifier predicts a category label from a transformed row
type Classifier interface {
	Predict(x []float64) (string, error)
}

// Regressor predicts a continuous estimate from a transformed row
type Regressor interface {
	Predict(x []float64) (float64, error)
}

type envelope struct {
	Kind string `json:"kind"`
}

// DecodeClassifier parses a classifier artifact and checks it against the
// transformer output width
func DecodeClassifier(data []byte, width int) (Classifier, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid classifier JSON: %w", err)
	}

	switch env.Kind {
	case KindLogistic:
		var c LogisticClassifier
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("invalid logistic classifier: %w", err)
		}
		if err := c.validate(width); err != nil {
			return nil, err
		}
		return &c, nil
	case KindForest:
		var c ForestClassifier
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("invalid forest classifier: %w", err)
		}
		if err := c.validate(width); err != nil {
			return nil, err
		}
		return &c, nil
	default:
		return nil, fmt.Errorf("unsupported classifier kind %q", env.Kind)
	}
}

// DecodeRegressor parses a regressor artifact and checks it against the
// transformer output width
func DecodeRegressor(data []byte, width int) (Regressor, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid regressor JSON: %w", err)
	}

	switch env.Kind {
	case KindLinear:
		var r LinearRegressor
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("invalid linear regressor: %w", err)
		}
		if err := r.validate(width); err != nil {
			return nil, err
		}
		return &r, nil
	case KindForest:
		var r ForestRegressor
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("invalid forest regressor: %w", err)
		}
		if err := r.validate(width); err != nil {
			return nil, err
		}
		return &r, nil
	default:
		return nil, fmt.Errorf("unsupported regressor kind %q", env.Kind)
	}
}
