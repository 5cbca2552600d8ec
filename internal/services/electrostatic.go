package services

import (
	"math"

	"github.com/Simplici0/sanquote/internal/pricing"
)

const Electrostatic ID = "electrostatic"

// electrostatic sprays by area or by room, whichever prices higher.
var electrostatic = &Definition{
	ID:     Electrostatic,
	Name:   "Electrostatic Spray",
	Items:  []string{"area", "rooms"},
	annual: AnnualFromContract,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{
			pricing.OneTime,
			pricing.Weekly,
			pricing.Biweekly,
			pricing.Monthly,
			pricing.Quarterly,
		}, pricing.Monthly)
		cfg.Blocks["area"] = pricing.Block{Unit: 1000, FirstRate: 100, AdditionalRate: 50}
		cfg.Rates["rooms"] = pricing.RateTable{Default: rate(15, 0)}
		cfg.Fees["visitMinimum"] = 75
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		area := in.Quantity("area")
		byArea := pricing.BlockPrice(area, cfg.Block("area"), in.ExactArea)
		byRoom := priced("rooms", in.Quantity("rooms"), cfg.Rate("rooms", f))
		if byRoom.Applied > byArea {
			c.add(byRoom)
		} else if area > 0 {
			c.add(flat("area", area, byArea))
		}
		floored(&c, "visitMinimum", cfg.Fee("visitMinimum"))

		c.installBase = math.Max(byArea, baseValue(in, cfg, "rooms"))
		return c
	},
}
