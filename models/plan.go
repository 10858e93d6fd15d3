package models

// Plan describes a purchasable subscription tier. The catalog is static;
// price IDs map to the payment provider's configuration.
type Plan struct {
	ID          string  `json:"id"`
	PriceID     string  `json:"priceId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Mode        string  `json:"mode"`
}

var Plans = map[string]Plan{
	PlanPro: {
		ID:          "prod_SHa7x3eZfmN8jf",
		PriceID:     "price_1RN0xXEJYDQN8qesgwEHj3Az",
		Name:        "Dipout Pro",
		Description: "A streamlined solution for restaurants that want to track no-shows, gather insights, and stay on top of customer behavior — without the complexity.",
		Price:       14.99,
		Mode:        "subscription",
	},
	PlanProPlus: {
		ID:          "prod_SHaBaAszk7DRwU",
		PriceID:     "price_1RN10nEJYDQN8qesLnJFRjXg",
		Name:        "Dipout Pro+",
		Description: "Everything in Pro, plus advanced analytics, customizable alerts, and multi-user access — perfect for growing teams and higher-volume restaurants.",
		Price:       19.99,
		Mode:        "subscription",
	},
}
