package types

import "github.com/shopspring/decimal"

// BoostPack is one purchasable boost tier.
type BoostPack struct {
	Multiplier string          `json:"multiplier"`
	Duration   string          `json:"duration"`
	Price      decimal.Decimal `json:"price"`
}

// BoostPacks lists the tiers offered on the boost screen.
var BoostPacks = []BoostPack{
	{Multiplier: "10x", Duration: "12 hours", Price: decimal.NewFromInt(99)},
	{Multiplier: "30x", Duration: "12 hours", Price: decimal.NewFromInt(249)},
	{Multiplier: "50x", Duration: "12 hours", Price: decimal.NewFromInt(399)},
	{Multiplier: "100x", Duration: "24 hours", Price: decimal.NewFromInt(899)},
	{Multiplier: "500x", Duration: "24 hours", Price: decimal.NewFromInt(3999)},
}

// FindBoostPack returns the pack with the given multiplier label.
func FindBoostPack(multiplier string) (BoostPack, bool) {
	for _, p := range BoostPacks {
		if p.Multiplier == multiplier {
			return p, true
		}
	}
	return BoostPack{}, false
}

// Donation presets in fiat units.
var (
	DonationAmounts       = []int64{5, 10, 25, 50}
	DefaultDonationAmount = int64(10)
)
