package product

import "slices"

// Type is the product type tag the billing API uses when querying details.
type Type string

const (
	TypeInApp Type = "inapp" // one-time product
	TypeSubs  Type = "subs"  // subscription
)

// RecurrenceMode describes how a pricing phase repeats. The values mirror
// the billing API's encoding.
type RecurrenceMode int

const (
	RecurrenceUnknown      RecurrenceMode = 0
	RecurrenceInfinite     RecurrenceMode = 1
	RecurrenceFinite       RecurrenceMode = 2
	RecurrenceNonRecurring RecurrenceMode = 3
)

func (m RecurrenceMode) String() string {
	switch m {
	case RecurrenceInfinite:
		return "infinite-recurring"
	case RecurrenceFinite:
		return "finite-recurring"
	case RecurrenceNonRecurring:
		return "non-recurring"
	default:
		return "unknown"
	}
}

// SubscriptionOfferDetails is one base plan or offer of a subscription.
type SubscriptionOfferDetails struct {
	BasePlanID    string
	OfferID       string // empty for the base plan itself
	OfferToken    string
	PricingPhases []PricingPhase // in source order
}

func (s SubscriptionOfferDetails) clone() SubscriptionOfferDetails {
	s.PricingPhases = slices.Clone(s.PricingPhases)

	return s
}

// OneTimePurchaseOfferDetails is the price of a one-time product.
type OneTimePurchaseOfferDetails struct {
	PriceAmountMicros int64
	PriceCurrencyCode string // ISO 4217
	FormattedPrice    string
}

// PricingPhase is one segment of a subscription offer's price schedule.
type PricingPhase struct {
	PriceAmountMicros int64
	PriceCurrencyCode string
	FormattedPrice    string
	BillingPeriod     string // ISO 8601 duration, e.g. "P1M"
	RecurrenceMode    RecurrenceMode
	BillingCycleCount int // only meaningful for RecurrenceFinite
}

// offerSet holds the product-type dependent part of Details. Exactly one
// variant is set, chosen by the product type at parse time.
type offerSet interface {
	isOfferSet()
}

type subscriptionOffers []SubscriptionOfferDetails

// oneTimeOffer carries a nil details pointer when the document has none.
type oneTimeOffer struct {
	details *OneTimePurchaseOfferDetails
}

func (subscriptionOffers) isOfferSet() {}
func (oneTimeOffer) isOfferSet()       {}

// Details is a parsed product description. It is immutable; accessors
// returning slices hand out copies.
type Details struct {
	productID   string
	productType Type
	title       string
	description string
	json        string
	offers      offerSet
}

func (d *Details) ProductID() string   { return d.productID }
func (d *Details) ProductType() Type   { return d.productType }
func (d *Details) Title() string       { return d.title }
func (d *Details) Description() string { return d.description }

// JSON returns the document the details were parsed from, unmodified.
func (d *Details) JSON() string { return d.json }

// IsSubscription reports whether the details carry subscription offers.
func (d *Details) IsSubscription() bool {
	_, ok := d.offers.(subscriptionOffers)

	return ok
}

// SubscriptionOfferDetails returns the subscription offers in source order.
// It returns nil for non-subscription products and an empty, non-nil slice
// for subscriptions without offers.
func (d *Details) SubscriptionOfferDetails() []SubscriptionOfferDetails {
	offers, ok := d.offers.(subscriptionOffers)
	if !ok {
		return nil
	}

	out := make([]SubscriptionOfferDetails, len(offers))
	for i, o := range offers {
		out[i] = o.clone()
	}

	return out
}

// OneTimePurchaseOfferDetails returns the one-time offer, if the product is
// not a subscription and the document contained one.
func (d *Details) OneTimePurchaseOfferDetails() (OneTimePurchaseOfferDetails, bool) {
	offer, ok := d.offers.(oneTimeOffer)
	if !ok || offer.details == nil {
		return OneTimePurchaseOfferDetails{}, false
	}

	return *offer.details, true
}

// String returns a diagnostic form embedding the raw JSON text.
func (d *Details) String() string {
	return "ProductDetails:" + d.json
}
