package model

import (
	"github.com/pgvector/pgvector-go"
)

// ReferenceListing is a historical listing kept alongside its transformed
// feature vector, used to show comparable properties next to a valuation.
type ReferenceListing struct {
	ID           int64           `json:"id" db:"id"`
	City         string          `json:"city" db:"city"`
	Locality     string          `json:"locality" db:"locality"`
	PropertyType string          `json:"property_type" db:"property_type"`
	BHK          int             `json:"bhk" db:"bhk"`
	SizeInSqFt   int             `json:"size_sqft" db:"size_sqft"`
	PriceLakhs   float64         `json:"price_lakhs" db:"price_lakhs"`
	Features     pgvector.Vector `json:"-" db:"features"`
	Distance     float64         `json:"distance" db:"distance"`

	Score          float64  `json:"score" db:"-"`
	MatchedReasons []string `json:"matched_reasons,omitempty" db:"-"`
}

// PricePerSqFt returns the listing's rate in rupees per square foot
func (l *ReferenceListing) PricePerSqFt(lakhMultiplier float64) float64 {
	return PricePerSqFt(l.PriceLakhs, l.SizeInSqFt, lakhMultiplier)
}

// PricePerSqFt converts a price in lakhs into a per-square-foot rate.
// A non-positive size yields 0 rather than a division by zero.
func PricePerSqFt(priceLakhs float64, sizeSqFt int, lakhMultiplier float64) float64 {
	if sizeSqFt <= 0 {
		return 0
	}
	return priceLakhs * lakhMultiplier / float64(sizeSqFt)
}
