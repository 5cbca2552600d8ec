package pricing

// Amplify doubles a monthly amount and takes off a flat discount when active,
// floored at zero. Inactive passes base through unchanged.
func Amplify(base float64, active bool, discount float64) float64 {
	base = Sanitize(base)
	if !active {
		return base
	}
	v := 2*base - Sanitize(discount)
	if v < 0 {
		return 0
	}
	return v
}
