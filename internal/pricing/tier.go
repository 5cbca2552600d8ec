package pricing

// Tier is the global pricing policy level of a quote.
type Tier string

const (
	Standard Tier = "standard"
	Premium  Tier = "premium"
)

// TierMultipliers hold the admin-set factor for each tier.
type TierMultipliers struct {
	Standard float64 `json:"standard"`
	Premium  float64 `json:"premium"`
}

// ClampTier maps anything unrecognised to Standard.
func ClampTier(t Tier) Tier {
	if t == Premium {
		return Premium
	}
	return Standard
}

// Factor returns the multiplier for t. A non-positive configured factor is
// treated as 1.
func (m TierMultipliers) Factor(t Tier) float64 {
	f := m.Standard
	if ClampTier(t) == Premium {
		f = m.Premium
	}
	f = Sanitize(f)
	if f <= 0 {
		return 1
	}
	return f
}

// Apply scales a final amount. Never call it on unit rates or minimums.
func (m TierMultipliers) Apply(t Tier, amount float64) float64 {
	return Sanitize(amount) * m.Factor(t)
}
