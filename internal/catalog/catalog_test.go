package catalog_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bilusteknoloji/playdetails/internal/catalog"
	"github.com/bilusteknoloji/playdetails/internal/product"
)

func fixedToken() string { return "token-1" }

func TestGenerateOneTime(t *testing.T) {
	gen := catalog.New()

	docs, err := gen.Generate(product.TypeInApp, []string{"gem_100", "gem_500"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	d, err := product.Parse(product.TypeInApp, docs[1])
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if d.ProductID() != "gem_500" || d.Title() != "gem_500" {
		t.Errorf("unexpected id/title: %q %q", d.ProductID(), d.Title())
	}
	if d.Description() != "dummy description" {
		t.Errorf("Description() = %q, want %q", d.Description(), "dummy description")
	}

	offer, ok := d.OneTimePurchaseOfferDetails()
	if !ok {
		t.Fatal("expected one-time offer, got none")
	}

	want := product.OneTimePurchaseOfferDetails{
		PriceAmountMicros: 5000000,
		PriceCurrencyCode: "USD",
		FormattedPrice:    "$5.00",
	}
	if diff := cmp.Diff(want, offer); diff != "" {
		t.Errorf("offer mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSubscription(t *testing.T) {
	gen := catalog.New(
		catalog.WithPriceMicros(2990000),
		catalog.WithCurrency("eur"),
		catalog.WithDescription("Monthly access"),
		catalog.WithBillingPeriod("P1Y"),
		catalog.WithTokenSource(fixedToken),
	)

	docs, err := gen.Generate(product.TypeSubs, []string{"premium"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	d, err := product.Parse(product.TypeSubs, docs[0])
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []product.SubscriptionOfferDetails{{
		BasePlanID: "premium-base",
		OfferToken: "token-1",
		PricingPhases: []product.PricingPhase{{
			PriceAmountMicros: 2990000,
			PriceCurrencyCode: "EUR",
			FormattedPrice:    "€2.99",
			BillingPeriod:     "P1Y",
			RecurrenceMode:    product.RecurrenceInfinite,
		}},
	}}

	if diff := cmp.Diff(want, d.SubscriptionOfferDetails()); diff != "" {
		t.Errorf("offers mismatch (-want +got):\n%s", diff)
	}
	if d.Description() != "Monthly access" {
		t.Errorf("Description() = %q, want %q", d.Description(), "Monthly access")
	}
}

func TestGenerateDefaultTokensAreUnique(t *testing.T) {
	docs, err := catalog.New().Generate(product.TypeSubs, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	tokens := make(map[string]bool)

	for _, doc := range docs {
		d, err := product.Parse(product.TypeSubs, doc)
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}

		tok := d.SubscriptionOfferDetails()[0].OfferToken
		if tok == "" {
			t.Error("expected non-empty offer token")
		}

		tokens[tok] = true
	}

	if len(tokens) != 2 {
		t.Errorf("expected 2 distinct tokens, got %d", len(tokens))
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name        string
		gen         *catalog.Service
		productType product.Type
		ids         []string
	}{
		{"empty id", catalog.New(), product.TypeInApp, []string{"ok", " "}},
		{"unknown currency", catalog.New(catalog.WithCurrency("QQQ")), product.TypeInApp, []string{"a"}},
		{"bad period", catalog.New(catalog.WithBillingPeriod("monthly")), product.TypeSubs, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.gen.Generate(tt.productType, tt.ids); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestGenerateEmptyIDError(t *testing.T) {
	_, err := catalog.New().Generate(product.TypeInApp, []string{""})
	if !errors.Is(err, catalog.ErrEmptyProductID) {
		t.Errorf("expected ErrEmptyProductID, got %v", err)
	}
}
