package services

import "github.com/Simplici0/sanquote/internal/pricing"

const FloorScrub ID = "floor_scrub"

// floorScrub is restroom floor scrubbing. Twice-monthly service bundled with
// restroom sanitation is billed as two monthly visits less a flat discount.
var floorScrub = &Definition{
	ID:      FloorScrub,
	Name:    "Floor Scrubbing",
	Items:   []string{"fixtures", "area"},
	annual:  AnnualFromContract,
	amplify: true,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{
			pricing.Monthly,
			pricing.TwiceMonthly,
			pricing.Bimonthly,
			pricing.Quarterly,
		}, pricing.Monthly)
		cfg.Rates["fixtures"] = pricing.RateTable{
			Default: rate(25, 175),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Bimonthly: rate(35, 250),
				pricing.Quarterly: rate(40, 250),
			},
		}
		cfg.Blocks["area"] = pricing.Block{Unit: 500, FirstRate: 250, AdditionalRate: 125}
		cfg.Fees["bundleDiscount"] = 15
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		fixtures := in.Quantity("fixtures")
		area := in.Quantity("area")
		c.add(priced("fixtures", fixtures, cfg.Rate("fixtures", f)))
		if area > 0 {
			c.add(flat("area", area, pricing.BlockPrice(area, cfg.Block("area"), in.ExactArea)))
		}

		c.installBase = baseValue(in, cfg, "fixtures") +
			pricing.BlockPrice(area, cfg.Block("area"), in.ExactArea)
		return c
	},
}
