// Package store resolves the merchant store and language every storefront
// request is scoped to.
package store

import (
	"context"
	"net/http"
	"strings"

	"storefront_backend/internal/store/repository"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const (
	contextStoreKey    = "merchantStore"
	contextLanguageKey = "language"

	// QueryStore selects the merchant store by code.
	QueryStore = "store"
	// QueryLanguage selects the content language by code.
	QueryLanguage = "lang"
)

// Resolver looks up stores and languages by code.
type Resolver interface {
	GetStoreByCode(ctx context.Context, code string) (repository.MerchantStore, error)
	GetLanguageByCode(ctx context.Context, code string) (repository.Language, error)
}

// Context returns middleware that resolves ?store= (defaulting to
// defaultCode) and ?lang= (defaulting to the store's default language).
func Context(resolver Resolver, defaultCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.TrimSpace(c.Query(QueryStore))
		if code == "" {
			code = defaultCode
		}

		merchant, err := resolver.GetStoreByCode(c.Request.Context(), code)
		if err != nil {
			httpkit.HandleError(c, err)
			c.Abort()
			return
		}

		langCode := strings.TrimSpace(c.Query(QueryLanguage))
		if langCode == "" {
			langCode = merchant.DefaultLanguage
		}

		lang, err := resolver.GetLanguageByCode(c.Request.Context(), langCode)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				httpkit.Error(c, http.StatusBadRequest, "unsupported language "+langCode, nil)
				c.Abort()
				return
			}
			httpkit.HandleError(c, err)
			c.Abort()
			return
		}

		if tokenStore := c.GetString(httpkit.ContextTokenStoreKey); tokenStore != "" && tokenStore != merchant.Code {
			httpkit.Error(c, http.StatusForbidden, "token was not issued for store "+merchant.Code, nil)
			c.Abort()
			return
		}

		c.Set(contextStoreKey, &merchant)
		c.Set(contextLanguageKey, &lang)
		ctx := context.WithValue(c.Request.Context(), logger.StoreKey, merchant.Code)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// FromContext returns the store and language resolved by Context.
// Either value is nil when the middleware did not run.
func FromContext(c *gin.Context) (*repository.MerchantStore, *repository.Language) {
	var merchant *repository.MerchantStore
	var lang *repository.Language
	if v, ok := c.Get(contextStoreKey); ok {
		merchant, _ = v.(*repository.MerchantStore)
	}
	if v, ok := c.Get(contextLanguageKey); ok {
		lang, _ = v.(*repository.Language)
	}
	return merchant, lang
}

// Set places a store and language on the context. Used by tests and by
// callers that resolve the scope themselves.
func Set(c *gin.Context, merchant *repository.MerchantStore, lang *repository.Language) {
	c.Set(contextStoreKey, merchant)
	c.Set(contextLanguageKey, lang)
}
