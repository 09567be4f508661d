package service

import (
	"math"
	"sort"

	"reiadvisor/internal/model"
)

// Match reason constants
const (
	ReasonSameLocality     = "Same locality"
	ReasonSameCity         = "Same city"
	ReasonSameBHK          = "Same BHK"
	ReasonSamePropertyType = "Same property type"
	ReasonSimilarPrice     = "Similar price"
	ReasonSimilarSize      = "Similar size"
	ReasonGeneralMatch     = "General match"
)

// RankingWeights balance the comparable score components
type RankingWeights struct {
	Vector float64
	Price  float64
	Size   float64
}

// DefaultRankingWeights favour the feature-space distance
var DefaultRankingWeights = RankingWeights{Vector: 0.6, Price: 0.2, Size: 0.2}

// Ranker scores comparable listings against a valued property
type Ranker struct {
	weightVector float64
	weightPrice  float64
	weightSize   float64
}

// NewRanker creates a new ranker with specified weights
func NewRanker(w RankingWeights) *Ranker {
	return &Ranker{
		weightVector: w.Vector,
		weightPrice:  w.Price,
		weightSize:   w.Size,
	}
}

// RankComparables scores listings, attaches match reasons and sorts them by
// score descending. Ties keep the nearest-neighbour order.
func (r *Ranker) RankComparables(listings []model.ReferenceListing, rec *model.FeatureRecord, priceLakhs float64) []model.ReferenceListing {
	ranked := make([]model.ReferenceListing, len(listings))
	copy(ranked, listings)

	for i := range ranked {
		l := &ranked[i]

		vectorScore := 1 / (1 + math.Max(l.Distance, 0))
		priceScore := proximity(l.PriceLakhs, priceLakhs)
		sizeScore := proximity(float64(l.SizeInSqFt), float64(rec.SizeInSqFt))

		l.Score = (r.weightVector * vectorScore) +
			(r.weightPrice * priceScore) +
			(r.weightSize * sizeScore)
		l.MatchedReasons = r.generateMatchedReasons(*l, rec, priceScore, sizeScore)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// proximity is 1 when got equals want and falls linearly to 0 at a 100% gap
func proximity(got, want float64) float64 {
	if want <= 0 {
		return 0.5 // Neutral score without a reference
	}
	score := 1 - math.Abs(got-want)/want
	if score < 0 {
		return 0
	}
	return score
}

func (r *Ranker) generateMatchedReasons(l model.ReferenceListing, rec *model.FeatureRecord, priceScore, sizeScore float64) []string {
	reasons := []string{}

	if l.Locality == rec.Locality {
		reasons = append(reasons, ReasonSameLocality)
	} else if l.City == rec.City {
		reasons = append(reasons, ReasonSameCity)
	}
	if l.BHK == rec.BHK {
		reasons = append(reasons, ReasonSameBHK)
	}
	if l.PropertyType == rec.PropertyType {
		reasons = append(reasons, ReasonSamePropertyType)
	}
	if priceScore >= 0.9 {
		reasons = append(reasons, ReasonSimilarPrice)
	}
	if sizeScore >= 0.9 {
		reasons = append(reasons, ReasonSimilarSize)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonGeneralMatch)
	}
	return reasons
}
