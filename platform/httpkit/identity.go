package httpkit

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// Identity is the signed-in customer as seen by handlers.
type Identity interface {
	// Subject is the customer nick carried in the token's sub claim.
	Subject() string
	// StoreCode is the store the token was issued for, empty for legacy tokens.
	StoreCode() string
	Roles() []string
	HasRole(role string) bool
	IsAuthenticated() bool
}

type principal struct {
	subject string
	store   string
	roles   []string
}

func (p principal) Subject() string          { return p.subject }
func (p principal) StoreCode() string        { return p.store }
func (p principal) Roles() []string          { return p.roles }
func (p principal) HasRole(role string) bool { return slices.Contains(p.roles, role) }
func (p principal) IsAuthenticated() bool    { return p.subject != "" }

// GetIdentity reads the principal AuthRequired placed on the context. The
// result is never nil; check IsAuthenticated.
func GetIdentity(c *gin.Context) Identity {
	p := principal{
		subject: c.GetString(ContextSubjectKey),
		store:   c.GetString(ContextTokenStoreKey),
	}
	if p.subject == "" {
		return p
	}
	if roles, ok := c.Get(ContextRolesKey); ok {
		p.roles, _ = roles.([]string)
	}
	return p
}

// MustGetIdentity is GetIdentity for handlers that require a principal. It
// aborts with 401 and returns nil when there is none.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "user not logged in"})
		return nil
	}
	return id
}
