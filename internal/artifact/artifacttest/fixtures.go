// Package artifacttest builds small, self-consistent artifacts for tests.
package artifacttest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"reiadvisor/internal/artifact"
	"reiadvisor/internal/model"
)

// Default artifact names
const (
	TransformerName = "rei_preprocessor.json"
	ClassifierName  = "rei_classifier_model.json"
	RegressorName   = "rei_regressor_model.json"
)

// Names returns the default artifact names
func Names() artifact.Names {
	return artifact.Names{
		Transformer: TransformerName,
		Classifier:  ClassifierName,
		Regressor:   RegressorName,
	}
}

// Localities is the fitted Locality vocabulary of the fixture transformer
var Localities = []string{"Locality_1", "Locality_84", "Locality_212", "Locality_429", "Locality_490"}

var vocab = map[string][]string{
	model.ColState: {"Maharashtra", "Karnataka", "Delhi", "Telangana", "Tamil Nadu",
		"West Bengal", "Gujarat", "Uttarakhand", "Rajasthan", "Uttar Pradesh",
		"Punjab", "Kerala", "Haryana", "Madhya Pradesh"},
	model.ColCity: {"Mumbai", "Bangalore", "Pune", "Delhi", "Hyderabad", "Chennai",
		"Kolkata", "Ahmedabad", "Dehradun", "Jaipur", "Lucknow", "Nagpur",
		"Indore", "Chandigarh", "Kochi"},
	model.ColLocality:                     Localities,
	model.ColPropertyType:                 {"Apartment", "Independent House", "Villa", "Penthouse"},
	model.ColFurnishedStatus:              {"Unfurnished", "Semi-Furnished", "Furnished"},
	model.ColPublicTransportAccessibility: {"Low", "Medium", "High"},
	model.ColParkingSpace:                 {"Yes", "No"},
	model.ColSecurity:                     {"Yes", "No"},
	model.ColFacing:                       {"East", "West", "North", "South", "North-East", "North-West", "South-East", "South-West"},
	model.ColOwnerType:                    {"Owner", "Dealer", "Builder"},
	model.ColAvailabilityStatus:           {"Ready_to_Move", "Under_Construction"},
}

// Fixture is a transformer plus matching models, kept as plain structs so
// tests can tweak them before encoding.
type Fixture struct {
	Transformer artifact.ColumnTransformer
	Classifier  artifact.LogisticClassifier
	Regressor   artifact.LinearRegressor
}

// New builds the default fixture. Its behaviour:
//
//	price (lakhs) = 150 + 40 * (Size_in_SqFt - 2000) / 1000
//	label         = High_Potential when Amenity_Score >= 4, else Low_Potential
//
// handleUnknown applies to every one-hot step.
func New(handleUnknown string) *Fixture {
	f := &Fixture{}
	offsets := map[string]int{}
	width := 0

	for _, col := range model.FeatureColumns {
		offsets[col] = width
		if cats, ok := vocab[col]; ok {
			f.Transformer.Steps = append(f.Transformer.Steps, artifact.TransformStep{
				Column:        col,
				Kind:          artifact.StepOneHot,
				Categories:    cats,
				HandleUnknown: handleUnknown,
			})
			width += len(cats)
			continue
		}
		switch col {
		case model.ColSizeInSqFt:
			f.Transformer.Steps = append(f.Transformer.Steps, artifact.TransformStep{
				Column: col, Kind: artifact.StepScale, Mean: 2000, Scale: 1000,
			})
		case model.ColAmenityScore:
			f.Transformer.Steps = append(f.Transformer.Steps, artifact.TransformStep{
				Column: col, Kind: artifact.StepPassthrough,
			})
		default:
			f.Transformer.Steps = append(f.Transformer.Steps, artifact.TransformStep{
				Column: col, Kind: artifact.StepScale, Mean: 0, Scale: 10,
			})
		}
		width++
	}
	f.Transformer.Version = 1

	f.Regressor.Coef = make([]float64, width)
	f.Regressor.Coef[offsets[model.ColSizeInSqFt]] = 40
	f.Regressor.Intercept = 150

	row := make([]float64, width)
	row[offsets[model.ColAmenityScore]] = -1
	f.Classifier = artifact.LogisticClassifier{
		Classes:   []string{model.LabelHighPotential, model.LabelLowPotential},
		Coef:      [][]float64{row},
		Intercept: []float64{3.5},
	}

	return f
}

// Files encodes the fixture under the default names
func (f *Fixture) Files() map[string][]byte {
	return map[string][]byte{
		TransformerName: mustJSON(f.Transformer),
		ClassifierName:  mustJSON(struct {
			Kind string `json:"kind"`
			artifact.LogisticClassifier
		}{artifact.KindLogistic, f.Classifier}),
		RegressorName: mustJSON(struct {
			Kind string `json:"kind"`
			artifact.LinearRegressor
		}{artifact.KindLinear, f.Regressor}),
	}
}

// Write stores files in a fresh temporary directory and returns it
func Write(t testing.TB, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

// Artifacts decodes the fixture into ready handles
func (f *Fixture) Artifacts(t testing.TB) *artifact.Artifacts {
	t.Helper()
	arts, err := artifact.NewLoader(NewMemorySource(f.Files()), Names()).Load(context.Background())
	if err != nil {
		t.Fatalf("load fixture artifacts: %v", err)
	}
	return arts
}

// MemorySource serves artifacts from memory and counts reads
type MemorySource struct {
	mu    sync.Mutex
	files map[string][]byte
	reads int
}

// NewMemorySource creates a source over files
func NewMemorySource(files map[string][]byte) *MemorySource {
	return &MemorySource{files: files}
}

// Read returns the named payload or os.ErrNotExist
func (s *MemorySource) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, os.ErrNotExist)
	}
	return data, nil
}

// Describe names the source for logs
func (s *MemorySource) Describe() string {
	return "memory"
}

// Reads returns how many times Read was called
func (s *MemorySource) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
