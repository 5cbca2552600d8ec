package pricing

// InstallMultipliers scale the install base. Both are edited by admins.
type InstallMultipliers struct {
	Elevated float64 `json:"elevated"`
	Standard float64 `json:"standard"`
}

// InstallationFee is the one-time fee for the first service. base must be the
// frequency-independent service value.
func InstallationFee(base float64, dirty bool, m InstallMultipliers, include bool) float64 {
	if !include {
		return 0
	}
	mult := m.Standard
	if dirty {
		mult = m.Elevated
	}
	return Sanitize(base) * Sanitize(mult)
}
