package pricing

// MinimumResult is a rate-per-unit line item priced against its floor.
type MinimumResult struct {
	Raw            float64
	Applied        float64
	MinimumApplied bool
}

// ApplyMinimum computes max(quantity*rate, minimum). A non-positive quantity
// prices to zero and never triggers the floor.
func ApplyMinimum(quantity, rate, minimum float64) MinimumResult {
	quantity = Sanitize(quantity)
	rate = Sanitize(rate)
	minimum = Sanitize(minimum)

	if quantity <= 0 {
		return MinimumResult{}
	}

	raw := quantity * rate
	applied := raw
	if minimum > applied {
		applied = minimum
	}

	return MinimumResult{
		Raw:            raw,
		Applied:        applied,
		MinimumApplied: raw > 0 && raw <= minimum,
	}
}
