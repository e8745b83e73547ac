package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUrgency(t *testing.T) {
	cases := []struct {
		eta  int
		want UrgencyTier
	}{
		{0, UrgencyUrgent},
		{1, UrgencyUrgent},
		{5, UrgencyUrgent},
		{6, UrgencySoon},
		{10, UrgencySoon},
		{15, UrgencySoon},
		{16, UrgencyLater},
		{45, UrgencyLater},
		{120, UrgencyLater},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyUrgency(c.eta), "eta %d minutes", c.eta)
	}
}

func TestClassifyUrgencyNegativeETA(t *testing.T) {
	// Tamu yang sudah terlambat tetap paling mendesak
	assert.Equal(t, UrgencyUrgent, ClassifyUrgency(-3))
}

func TestTierRankOrdering(t *testing.T) {
	assert.Less(t, TierRank(UrgencyUrgent), TierRank(UrgencySoon))
	assert.Less(t, TierRank(UrgencySoon), TierRank(UrgencyLater))
}
