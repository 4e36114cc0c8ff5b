package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/bilusteknoloji/playdetails/internal/money"
	"github.com/bilusteknoloji/playdetails/internal/period"
	"github.com/bilusteknoloji/playdetails/internal/product"
)

const (
	defaultPriceMicros   = 5 * money.MicrosPerUnit
	defaultCurrency      = "USD"
	defaultDescription   = "dummy description"
	defaultBillingPeriod = "P1M"
)

// ErrEmptyProductID is returned when a requested product ID is blank.
var ErrEmptyProductID = errors.New("empty product id")

// Generator defines the interface for producing product details documents.
type Generator interface {
	Generate(productType product.Type, ids []string) ([]string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithPriceMicros sets the price of every generated product.
func WithPriceMicros(micros int64) Option {
	return func(s *Service) {
		if micros >= 0 {
			s.priceMicros = micros
		}
	}
}

// WithCurrency sets the ISO 4217 currency code.
func WithCurrency(code string) Option {
	return func(s *Service) {
		if code != "" {
			s.currency = strings.ToUpper(code)
		}
	}
}

// WithDescription sets the description of every generated product.
func WithDescription(desc string) Option {
	return func(s *Service) {
		s.description = desc
	}
}

// WithBillingPeriod sets the ISO 8601 period of generated subscriptions.
func WithBillingPeriod(p string) Option {
	return func(s *Service) {
		if p != "" {
			s.billingPeriod = p
		}
	}
}

// WithTokenSource sets the function producing offer tokens.
// Defaults to uuid.NewString.
func WithTokenSource(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service fabricates product details documents with a fixed price, in the
// shape the billing API returns them.
type Service struct {
	priceMicros   int64
	currency      string
	description   string
	billingPeriod string
	newToken      func() string
	logger        *slog.Logger
}

// compile-time proof that Service implements Generator.
var _ Generator = (*Service)(nil)

// New creates a new details generator.
func New(opts ...Option) *Service {
	s := &Service{
		priceMicros:   defaultPriceMicros,
		currency:      defaultCurrency,
		description:   defaultDescription,
		billingPeriod: defaultBillingPeriod,
		newToken:      uuid.NewString,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Generate returns one JSON document per product ID, in order. Subscription
// products get a single base plan with one infinite-recurring phase; other
// types get a one-time purchase offer.
func (s *Service) Generate(productType product.Type, ids []string) ([]string, error) {
	formatted, err := money.Format(s.priceMicros, s.currency)
	if err != nil {
		return nil, fmt.Errorf("formatting price: %w", err)
	}

	if productType == product.TypeSubs {
		if _, err := period.Parse(s.billingPeriod); err != nil {
			return nil, fmt.Errorf("billing period: %w", err)
		}
	}

	docs := make([]string, 0, len(ids))

	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, ErrEmptyProductID
		}

		doc := s.document(productType, id, formatted)

		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding details for %s: %w", id, err)
		}

		s.logger.Debug("generated product details",
			slog.String("product", id),
			slog.String("type", string(productType)),
			slog.String("price", formatted),
		)

		docs = append(docs, string(data))
	}

	return docs, nil
}

func (s *Service) document(productType product.Type, id, formatted string) detailsDoc {
	doc := detailsDoc{
		ProductID:   id,
		Type:        string(productType),
		Title:       id,
		Name:        id,
		Description: s.description,
	}

	if productType == product.TypeSubs {
		doc.SubscriptionOfferDetails = []offerDoc{{
			BasePlanID: id + "-base",
			OfferToken: s.newToken(),
			PricingPhases: []phaseDoc{{
				PriceAmountMicros: s.priceMicros,
				PriceCurrencyCode: s.currency,
				FormattedPrice:    formatted,
				BillingPeriod:     s.billingPeriod,
				RecurrenceMode:    int(product.RecurrenceInfinite),
			}},
		}}

		return doc
	}

	doc.OneTimePurchaseOfferDetails = &oneTimeDoc{
		PriceAmountMicros: s.priceMicros,
		PriceCurrencyCode: s.currency,
		FormattedPrice:    formatted,
	}

	return doc
}
