package service

import (
	"testing"

	"reiadvisor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankComparables(t *testing.T) {
	rec := mumbaiRecord()
	ranker := NewRanker(DefaultRankingWeights)

	listings := []model.ReferenceListing{
		// nearest in feature space but a very different price and size
		{ID: 1, City: "Pune", Locality: "Locality_1", PropertyType: "Villa", BHK: 5, SizeInSqFt: 9000, PriceLakhs: 900, Distance: 0.5},
		{ID: 2, City: "Mumbai", Locality: "Locality_429", PropertyType: "Apartment", BHK: 3, SizeInSqFt: 4500, PriceLakhs: 250, Distance: 0.6},
		{ID: 3, City: "Mumbai", Locality: "Locality_84", PropertyType: "Apartment", BHK: 2, SizeInSqFt: 3000, PriceLakhs: 180, Distance: 2.0},
	}

	ranked := ranker.RankComparables(listings, &rec, 252.56)
	require.Len(t, ranked, 3)

	assert.Equal(t, int64(2), ranked[0].ID)
	assert.Equal(t, []string{ReasonSameLocality, ReasonSameBHK, ReasonSamePropertyType, ReasonSimilarPrice, ReasonSimilarSize}, ranked[0].MatchedReasons)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}

	// input order untouched
	assert.Equal(t, int64(1), listings[0].ID)
	assert.Zero(t, listings[0].Score)
}

func TestRankComparables_Reasons(t *testing.T) {
	rec := mumbaiRecord()
	ranker := NewRanker(DefaultRankingWeights)

	ranked := ranker.RankComparables([]model.ReferenceListing{
		{ID: 1, City: "Mumbai", Locality: "Locality_84", PropertyType: "Villa", BHK: 1, SizeInSqFt: 500, PriceLakhs: 20},
		{ID: 2, City: "Delhi", Locality: "Locality_1", PropertyType: "Villa", BHK: 1, SizeInSqFt: 500, PriceLakhs: 20},
	}, &rec, 252.56)

	assert.Equal(t, []string{ReasonSameCity}, ranked[0].MatchedReasons)
	assert.Equal(t, []string{ReasonGeneralMatch}, ranked[1].MatchedReasons)
}

func TestProximity(t *testing.T) {
	tests := []struct {
		got, want, expected float64
	}{
		{100, 100, 1},
		{90, 100, 0.9},
		{150, 100, 0.5},
		{300, 100, 0},
		{100, 0, 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, proximity(tt.got, tt.want), 1e-9)
	}
}
