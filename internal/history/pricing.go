package history

import "fmt"

// shuttlecocksPerUnit is how many shuttlecocks one usage unit stands for.
const shuttlecocksPerUnit = 4

// Price computes the price for every record without touching storage.
func Price(records []Record, mode PriceMode, params PricingParams) ([]Record, error) {
	out := make([]Record, len(records))
	copy(out, records)

	switch mode {
	case PriceModeRegular:
		for i := range out {
			price := formatPrice(params.CourtFee + out[i].FeatherCount*shuttlecocksPerUnit*params.ShuttlecockFee)
			out[i].Price = &price
		}
	case PriceModeAmerican:
		if len(out) == 0 {
			return nil, ErrNoPlayers
		}
		price := formatPrice(params.CombinedFee / float64(len(out)))
		for i := range out {
			p := price
			out[i].Price = &p
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPriceMode, mode)
	}
	return out, nil
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
