package pricing

import "math"

// Block prices an area as a flat first block plus additional blocks.
type Block struct {
	Unit           float64 `json:"unit"`
	FirstRate      float64 `json:"firstRate"`
	AdditionalRate float64 `json:"additionalRate"`
}

// BlockPrice prices area per visit. In exact mode the remainder past the first
// block is charged linearly at AdditionalRate/Unit; otherwise it is rounded up to
// whole blocks.
func BlockPrice(area float64, b Block, exact bool) float64 {
	area = Sanitize(area)
	if area <= 0 {
		return 0
	}

	first := Sanitize(b.FirstRate)
	unit := Sanitize(b.Unit)
	if unit <= 0 || area <= unit {
		return first
	}

	extra := area - unit
	additional := Sanitize(b.AdditionalRate)
	if exact {
		return first + extra*(additional/unit)
	}
	return first + math.Ceil(extra/unit)*additional
}
