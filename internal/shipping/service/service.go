// Package service computes localized shipping summaries for storefront carts,
// for signed-in customers and for guests.
package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	cartrepo "storefront_backend/internal/cart/repository"
	"storefront_backend/internal/customer"
	customerrepo "storefront_backend/internal/customer/repository"
	"storefront_backend/internal/orders/domain"
	"storefront_backend/internal/reference"
	"storefront_backend/internal/shipping/transport"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/sanitize"
)

const moduleLabelPrefix = "module.shipping."

// CartReader resolves carts by code.
type CartReader interface {
	GetCartByCode(ctx context.Context, code string, storeID int64) (cartrepo.ShoppingCart, error)
}

// CustomerReader resolves customers by login name.
type CustomerReader interface {
	GetByNick(ctx context.Context, nick string, storeID int64) (customerrepo.Customer, error)
}

// CountryReader resolves ISO country codes.
type CountryReader interface {
	GetByCode(code string, langCode string) (reference.Country, bool)
}

// QuoteProvider is the order-processing collaborator.
type QuoteProvider interface {
	GetShippingQuote(ctx context.Context, c customerrepo.Customer, cart cartrepo.ShoppingCart, store *storerepo.MerchantStore, lang *storerepo.Language) (*domain.ShippingQuote, error)
	GetShippingSummary(ctx context.Context, quote *domain.ShippingQuote, store *storerepo.MerchantStore, lang *storerepo.Language) (*domain.ShippingSummary, error)
}

// Labels resolves localized messages.
type Labels interface {
	Message(key string, locale language.Tag, args ...string) (string, error)
	MessageOrDefault(key string, locale language.Tag, def string, args ...string) string
}

// Pricer formats amounts in the store currency.
type Pricer interface {
	DisplayAmount(cents int64, store *storerepo.MerchantStore) (string, error)
}

// Deps are the collaborators of the shipping service.
type Deps struct {
	Carts     CartReader
	Customers CustomerReader
	Countries CountryReader
	Orders    QuoteProvider
	Labels    Labels
	Pricing   Pricer
	Log       *logger.Logger
}

// Service orchestrates shipping summary computation.
type Service struct {
	carts     CartReader
	customers CustomerReader
	countries CountryReader
	orders    QuoteProvider
	labels    Labels
	pricing   Pricer
	log       *logger.Logger
}

// New creates a shipping service.
func New(deps Deps) *Service {
	return &Service{
		carts:     deps.Carts,
		customers: deps.Customers,
		countries: deps.Countries,
		orders:    deps.Orders,
		labels:    deps.Labels,
		pricing:   deps.Pricing,
		log:       deps.Log,
	}
}

// CustomerSummary computes the summary for a cart owned by the signed-in
// customer nick. A cart owned by someone else is reported as not found.
func (s *Service) CustomerSummary(ctx context.Context, nick string, cartCode string, store *storerepo.MerchantStore, lang *storerepo.Language, locale language.Tag) (*transport.ReadableShippingSummary, error) {
	if err := validateScope(store, lang); err != nil {
		return nil, err
	}
	if strings.TrimSpace(nick) == "" {
		return nil, apperr.Unauthorized("User not logged in")
	}

	c, err := s.customers.GetByNick(ctx, nick, store.ID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("User not logged in")
		}
		s.log.WithContext(ctx).Error("customer lookup failed", "nick", nick, "error", err)
		return nil, apperr.Unavailable("Error while getting user details to calculate shipping quote")
	}

	cart, err := s.cart(ctx, cartCode, store)
	if err != nil {
		return nil, err
	}
	if !cart.OwnedBy(c.ID) {
		return nil, apperr.NotFoundf("Cart does not exist for user %s", c.Nick)
	}

	return s.calculate(ctx, c, cart, store, lang, locale)
}

// GuestSummary computes the summary for a guest cart shipped to address.
// An unrecognized country code falls back to the store's country.
func (s *Service) GuestSummary(ctx context.Context, cartCode string, address transport.AddressLocation, store *storerepo.MerchantStore, lang *storerepo.Language, locale language.Tag) (*transport.ReadableShippingSummary, error) {
	if err := validateScope(store, lang); err != nil {
		return nil, err
	}

	cart, err := s.cart(ctx, cartCode, store)
	if err != nil {
		return nil, err
	}

	countryCode := store.CountryCode
	if country, ok := s.countries.GetByCode(address.CountryCode, lang.Code); ok {
		countryCode = country.Code
	}
	guest := customer.NewAnonymous(store.ID, customerrepo.Address{
		PostalCode:  sanitize.Code(address.PostalCode),
		CountryCode: countryCode,
	})

	return s.calculate(ctx, guest, cart, store, lang, locale)
}

// PopulateSummary turns a summary into its readable, priced form.
// A nil summary yields an empty readable summary.
func (s *Service) PopulateSummary(summary *domain.ShippingSummary, store *storerepo.MerchantStore) (*transport.ReadableShippingSummary, error) {
	readable := &transport.ReadableShippingSummary{ShippingOptions: []domain.ShippingOption{}}
	if summary == nil {
		return readable, nil
	}

	shippingText, err := s.pricing.DisplayAmount(summary.ShippingCents, store)
	if err != nil {
		return nil, err
	}
	handlingText, err := s.pricing.DisplayAmount(summary.HandlingCents, store)
	if err != nil {
		return nil, err
	}

	readable.Shipping = summary.ShippingCents
	readable.Handling = summary.HandlingCents
	readable.ShippingText = shippingText
	readable.HandlingText = handlingText
	readable.ShippingModule = summary.ShippingModule
	readable.ShippingOption = summary.ShippingOption
	readable.FreeShipping = summary.FreeShipping
	readable.TaxOnShipping = summary.TaxOnShipping
	readable.Delivery = summary.Delivery
	return readable, nil
}

func (s *Service) cart(ctx context.Context, code string, store *storerepo.MerchantStore) (cartrepo.ShoppingCart, error) {
	cart, err := s.carts.GetCartByCode(ctx, code, store.ID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return cartrepo.ShoppingCart{}, apperr.NotFoundf("Cart code %s does not exist", code)
		}
		return cartrepo.ShoppingCart{}, err
	}
	return cart, nil
}

func (s *Service) calculate(ctx context.Context, c customerrepo.Customer, cart cartrepo.ShoppingCart, store *storerepo.MerchantStore, lang *storerepo.Language, locale language.Tag) (*transport.ReadableShippingSummary, error) {
	quote, err := s.orders.GetShippingQuote(ctx, c, cart, store, lang)
	if err != nil {
		return nil, err
	}
	summary, err := s.orders.GetShippingSummary(ctx, quote, store, lang)
	if err != nil {
		return nil, err
	}

	readable, err := s.PopulateSummary(summary, store)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		readable.Delivery = quote.Delivery
	}
	if err := s.populateOptions(ctx, quote, readable, store, locale); err != nil {
		return nil, err
	}
	return readable, nil
}

// populateOptions decorates every option with its localized description,
// note and option name. Only the description is required.
func (s *Service) populateOptions(ctx context.Context, quote *domain.ShippingQuote, readable *transport.ReadableShippingSummary, store *storerepo.MerchantStore, locale language.Tag) error {
	if len(quote.Options) == 0 {
		return nil
	}

	options := make([]domain.ShippingOption, len(quote.Options))
	for i, opt := range quote.Options {
		moduleKey := moduleLabelPrefix + opt.ShippingModuleCode

		description, err := s.labels.Message(moduleKey, locale, store.Name)
		if err != nil {
			return fmt.Errorf("shipping option %s: %w", opt.OptionID, err)
		}
		opt.Description = description
		noteKey := moduleKey + ".note"
		opt.Note = s.labels.MessageOrDefault(noteKey, locale, "")

		// Options carry no label of their own: a named option shows the
		// module note.
		if strings.TrimSpace(opt.OptionCode) != "" {
			if name, err := s.labels.Message(noteKey, locale); err == nil {
				opt.OptionName = name
			} else {
				s.log.WithContext(ctx).Warn("no shipping option label found", "key", noteKey, "option", opt.OptionID)
			}
		}

		if text, err := s.pricing.DisplayAmount(opt.PriceCents, store); err == nil {
			opt.PriceText = text
		}
		options[i] = opt

		if quote.SelectedOption != nil && quote.SelectedOption.OptionID == opt.OptionID {
			selected := opt
			readable.SelectedShippingOption = &selected
		}
	}
	readable.ShippingOptions = options
	return nil
}

func validateScope(store *storerepo.MerchantStore, lang *storerepo.Language) error {
	if store == nil {
		return apperr.Validation("merchant store cannot be null")
	}
	if lang == nil {
		return apperr.Validation("language cannot be null")
	}
	return nil
}
