package model

// Category labels produced by the classifier
const (
	LabelHighPotential = "High_Potential"
	LabelLowPotential  = "Low_Potential"
)

// Verdict is the human-readable rendering of a category label
type Verdict struct {
	Headline string `json:"headline"`
	Caption  string `json:"caption"`
	Positive bool   `json:"positive"`
}

// VerdictFor maps a classifier label onto its display verdict.
// Only High_Potential is positive; every other label reads as low potential.
func VerdictFor(label string) Verdict {
	if label == LabelHighPotential {
		return Verdict{
			Headline: "HIGH POTENTIAL",
			Caption:  "Undervalued relative to locality average.",
			Positive: true,
		}
	}
	return Verdict{
		Headline: "LOW POTENTIAL",
		Caption:  "Priced at a premium / Market Average.",
	}
}

// PredictionResult is the ephemeral output of one submission
type PredictionResult struct {
	RequestID     string             `json:"request_id"`
	Record        FeatureRecord      `json:"record"`
	PriceLakhs    float64            `json:"price_lakhs"`
	PricePerSqFt  float64            `json:"price_per_sqft"`
	Category      string             `json:"category"`
	Verdict       Verdict            `json:"verdict"`
	Warnings      []string           `json:"warnings,omitempty"`
	Comparables   []ReferenceListing `json:"comparables,omitempty"`
	ReferenceYear int                `json:"reference_year"`
	Took          int64              `json:"took_ms"`
}
