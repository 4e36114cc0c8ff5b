package catalog

// detailsDoc is the wire form of a product details document.
type detailsDoc struct {
	ProductID                   string      `json:"productId"`
	Type                        string      `json:"type"`
	Title                       string      `json:"title"`
	Name                        string      `json:"name"`
	Description                 string      `json:"description"`
	OneTimePurchaseOfferDetails *oneTimeDoc `json:"oneTimePurchaseOfferDetails,omitempty"`
	SubscriptionOfferDetails    []offerDoc  `json:"subscriptionOfferDetails,omitempty"`
}

type oneTimeDoc struct {
	PriceAmountMicros int64  `json:"priceAmountMicros"`
	PriceCurrencyCode string `json:"priceCurrencyCode"`
	FormattedPrice    string `json:"formattedPrice"`
}

type offerDoc struct {
	BasePlanID    string     `json:"basePlanId"`
	OfferID       string     `json:"offerId,omitempty"` // base plans carry no offer ID
	OfferToken    string     `json:"offerToken"`
	PricingPhases []phaseDoc `json:"pricingPhases"`
}

type phaseDoc struct {
	PriceAmountMicros int64  `json:"priceAmountMicros"`
	PriceCurrencyCode string `json:"priceCurrencyCode"`
	FormattedPrice    string `json:"formattedPrice"`
	BillingPeriod     string `json:"billingPeriod"`
	RecurrenceMode    int    `json:"recurrenceMode"`
	BillingCycleCount int    `json:"billingCycleCount"`
}
