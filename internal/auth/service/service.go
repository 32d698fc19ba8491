// Package service signs storefront customers in and issues access tokens.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront_backend/internal/auth/password"
	customerrepo "storefront_backend/internal/customer/repository"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/config"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/logger"
)

// ErrInvalidCredentials is returned for an unknown nick or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CustomerReader resolves customers by login name.
type CustomerReader interface {
	GetByNick(ctx context.Context, nick string, storeID int64) (customerrepo.Customer, error)
}

// Token is a signed access token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Service handles customer sign-in.
type Service struct {
	customers CustomerReader
	cfg       config.AuthServiceConfig
	log       *logger.Logger
	now       func() time.Time
}

// New creates an auth service.
func New(customers CustomerReader, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{customers: customers, cfg: cfg, log: log, now: time.Now}
}

// Login verifies the credentials of a customer of store and returns an
// access token bound to that store.
func (s *Service) Login(ctx context.Context, nick, plainPassword string, store *storerepo.MerchantStore) (Token, error) {
	if store == nil {
		return Token{}, apperr.Validation("merchant store cannot be null")
	}
	nick = strings.TrimSpace(nick)

	customer, err := s.customers.GetByNick(ctx, nick, store.ID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("login", nick, false, "unknown customer")
			return Token{}, apperr.Wrap(apperr.KindUnauthorized, ErrInvalidCredentials.Error(), ErrInvalidCredentials)
		}
		return Token{}, err
	}

	if err := password.Compare(customer.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", nick, false, "password mismatch")
		return Token{}, apperr.Wrap(apperr.KindUnauthorized, ErrInvalidCredentials.Error(), ErrInvalidCredentials)
	}

	token, err := s.signAccessToken(customer, store)
	if err != nil {
		return Token{}, err
	}
	s.log.AuthEvent("login", nick, true, "")
	return token, nil
}

func (s *Service) signAccessToken(customer customerrepo.Customer, store *storerepo.MerchantStore) (Token, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.GetAccessTokenTTL())
	roles := customer.Roles
	if roles == nil {
		roles = []string{}
	}

	claims := jwt.MapClaims{
		"sub":   customer.Nick,
		"store": store.Code,
		"type":  httpkit.AccessTokenType,
		"roles": roles,
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}
