package render

import "github.com/bilusteknoloji/playdetails/internal/product"

// Document is the output view of one parsed (or failed) product document.
type Document struct {
	Name        string  `json:"name" yaml:"name"`
	ProductID   string  `json:"productId,omitempty" yaml:"productId,omitempty"`
	ProductType string  `json:"productType,omitempty" yaml:"productType,omitempty"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	OneTime     *Price  `json:"oneTimePurchaseOffer,omitempty" yaml:"oneTimePurchaseOffer,omitempty"`
	Offers      []Offer `json:"subscriptionOffers,omitempty" yaml:"subscriptionOffers,omitempty"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Price is a one-time purchase price.
type Price struct {
	Micros    int64  `json:"priceAmountMicros" yaml:"priceAmountMicros"`
	Currency  string `json:"priceCurrencyCode" yaml:"priceCurrencyCode"`
	Formatted string `json:"formattedPrice" yaml:"formattedPrice"`
}

// Offer is a subscription base plan or offer.
type Offer struct {
	BasePlanID string  `json:"basePlanId" yaml:"basePlanId"`
	OfferID    string  `json:"offerId,omitempty" yaml:"offerId,omitempty"`
	OfferToken string  `json:"offerToken" yaml:"offerToken"`
	Phases     []Phase `json:"pricingPhases" yaml:"pricingPhases"`
}

// Phase is one pricing phase of an offer.
type Phase struct {
	Micros            int64  `json:"priceAmountMicros" yaml:"priceAmountMicros"`
	Currency          string `json:"priceCurrencyCode" yaml:"priceCurrencyCode"`
	Formatted         string `json:"formattedPrice" yaml:"formattedPrice"`
	BillingPeriod     string `json:"billingPeriod" yaml:"billingPeriod"`
	RecurrenceMode    string `json:"recurrenceMode" yaml:"recurrenceMode"`
	BillingCycleCount int    `json:"billingCycleCount,omitempty" yaml:"billingCycleCount,omitempty"`
}

// FromDetails builds the output view of parsed details.
func FromDetails(name string, d *product.Details) Document {
	doc := Document{
		Name:        name,
		ProductID:   d.ProductID(),
		ProductType: string(d.ProductType()),
		Title:       d.Title(),
		Description: d.Description(),
	}

	if offer, ok := d.OneTimePurchaseOfferDetails(); ok {
		doc.OneTime = &Price{
			Micros:    offer.PriceAmountMicros,
			Currency:  offer.PriceCurrencyCode,
			Formatted: offer.FormattedPrice,
		}
	}

	for _, o := range d.SubscriptionOfferDetails() {
		offer := Offer{
			BasePlanID: o.BasePlanID,
			OfferID:    o.OfferID,
			OfferToken: o.OfferToken,
			Phases:     make([]Phase, 0, len(o.PricingPhases)),
		}

		for _, p := range o.PricingPhases {
			offer.Phases = append(offer.Phases, Phase{
				Micros:            p.PriceAmountMicros,
				Currency:          p.PriceCurrencyCode,
				Formatted:         p.FormattedPrice,
				BillingPeriod:     p.BillingPeriod,
				RecurrenceMode:    p.RecurrenceMode.String(),
				BillingCycleCount: p.BillingCycleCount,
			})
		}

		doc.Offers = append(doc.Offers, offer)
	}

	return doc
}

// Failed builds the output view of a document that could not be parsed.
func Failed(name string, err error) Document {
	return Document{Name: name, Error: err.Error()}
}
