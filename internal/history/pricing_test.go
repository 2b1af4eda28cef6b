package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceDoesNotMutateInput(t *testing.T) {
	records := []Record{{Name: "A", FeatherCount: 1}, {Name: "B"}, {Name: "C"}}

	priced, err := Price(records, PriceModeAmerican, PricingParams{CombinedFee: 100})
	require.NoError(t, err)
	assert.Equal(t, "33.33", *priced[0].Price)
	assert.Nil(t, records[0].Price)
}

func TestPriceRegularWithoutRecords(t *testing.T) {
	priced, err := Price(nil, PriceModeRegular, PricingParams{CourtFee: 10})
	require.NoError(t, err)
	assert.Empty(t, priced)
}
