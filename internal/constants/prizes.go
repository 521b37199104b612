package constants

// AutoPrize describes a spin-wheel prize the game server can hand out
// without human involvement. Anything not listed here (vehicles, custom
// plates, house keys) requires manual delivery by staff.
type AutoPrize struct {
	Type   string // "cash", "item"
	Amount int    // cash amount, or item count
	Item   string // inventory item name for item prizes
	Label  string
}

var AutoDeliverablePrizes = map[string]AutoPrize{
	"cash_small":  {Type: "cash", Amount: 25000, Label: "$25,000 Cash"},
	"cash_medium": {Type: "cash", Amount: 100000, Label: "$100,000 Cash"},
	"cash_large":  {Type: "cash", Amount: 500000, Label: "$500,000 Cash"},
	"weapon_crate": {
		Type: "item", Amount: 1, Item: "weapon_crate", Label: "Weapon Crate",
	},
	"supply_crate": {
		Type: "item", Amount: 3, Item: "supply_crate", Label: "Supply Crates x3",
	},
}

// IsAutoDeliverable reports whether a prize key can be pushed to the game
// server directly.
func IsAutoDeliverable(prizeKey string) bool {
	_, ok := AutoDeliverablePrizes[prizeKey]
	return ok
}
