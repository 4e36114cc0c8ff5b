package product

import (
	"encoding/json"
	"fmt"
)

// Parse builds Details from the JSON text the billing API returns for a
// product of the given type.
//
// Only structural problems fail: a document that is not a JSON object
// (ErrMalformedDocument) or an offer or pricing phase entry that is not an
// object (ErrMalformedElement). Missing or mistyped scalar fields fall back
// to "" or 0, since store responses are often partial.
func Parse(productType Type, jsonText string) (*Details, error) {
	o, err := decodeObject([]byte(jsonText))
	if err != nil {
		return nil, &ParseError{Kind: ErrMalformedDocument, Err: err}
	}

	d := &Details{
		productID:   o.optString("productId"),
		productType: productType,
		title:       o.optString("title"),
		description: o.optString("description"),
		json:        jsonText,
	}

	if productType == TypeSubs {
		offers, err := parseSubscriptionOffers(o)
		if err != nil {
			return nil, err
		}

		d.offers = offers
	} else {
		d.offers = parseOneTimeOffer(o)
	}

	return d, nil
}

func parseSubscriptionOffers(o object) (subscriptionOffers, error) {
	const key = "subscriptionOfferDetails"

	elems, _ := o.optArray(key)
	offers := make(subscriptionOffers, 0, len(elems))

	for i, elem := range elems {
		path := fmt.Sprintf("%s[%d]", key, i)

		offerJSON, err := elementObject(elem, path)
		if err != nil {
			return nil, err
		}

		offer, err := parseSubscriptionOffer(offerJSON, path)
		if err != nil {
			return nil, err
		}

		offers = append(offers, offer)
	}

	return offers, nil
}

func parseSubscriptionOffer(o object, path string) (SubscriptionOfferDetails, error) {
	elems, _ := o.optArray("pricingPhases")
	phases := make([]PricingPhase, 0, len(elems))

	for i, elem := range elems {
		phaseJSON, err := elementObject(elem, fmt.Sprintf("%s.pricingPhases[%d]", path, i))
		if err != nil {
			return SubscriptionOfferDetails{}, err
		}

		phases = append(phases, parsePricingPhase(phaseJSON))
	}

	return SubscriptionOfferDetails{
		BasePlanID:    o.optString("basePlanId"),
		OfferID:       o.optString("offerId"),
		OfferToken:    o.optString("offerToken"),
		PricingPhases: phases,
	}, nil
}

func parseOneTimeOffer(o object) oneTimeOffer {
	offerJSON, ok := o.optObject("oneTimePurchaseOfferDetails")
	if !ok {
		return oneTimeOffer{}
	}

	return oneTimeOffer{details: &OneTimePurchaseOfferDetails{
		PriceAmountMicros: offerJSON.optInt64("priceAmountMicros"),
		PriceCurrencyCode: offerJSON.optString("priceCurrencyCode"),
		FormattedPrice:    offerJSON.optString("formattedPrice"),
	}}
}

func parsePricingPhase(o object) PricingPhase {
	return PricingPhase{
		PriceAmountMicros: o.optInt64("priceAmountMicros"),
		PriceCurrencyCode: o.optString("priceCurrencyCode"),
		FormattedPrice:    o.optString("formattedPrice"),
		BillingPeriod:     o.optString("billingPeriod"),
		RecurrenceMode:    RecurrenceMode(o.optInt("recurrenceMode")),
		BillingCycleCount: o.optInt("billingCycleCount"),
	}
}

// elementObject decodes an array element that must be an object.
func elementObject(raw json.RawMessage, path string) (object, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return nil, &ParseError{Kind: ErrMalformedElement, Path: path, Err: err}
	}

	return o, nil
}
