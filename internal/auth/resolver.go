package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/marketplace/pkg/util"
)

const identityKey = "auth_identity"

// Authority labels carried by resolved identities.
const (
	AuthorityClient  = "ROLE_CLIENT"
	AuthoritySeller  = "ROLE_SELLER"
	AuthorityAdmin   = "ROLE_ADMIN"
	AuthorityDefault = "ROLE_USER"

	authorityPrefix = "ROLE_"
)

// Identity is the per-request principal derived from a verified token.
type Identity struct {
	Principal   string
	Authorities []string
}

// HasAuthority reports whether the identity carries the given authority.
func (i *Identity) HasAuthority(authority string) bool {
	if i == nil {
		return false
	}
	for _, a := range i.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Resolver converts an Authorization header into an Identity.
type Resolver struct {
	codec *TokenCodec
}

// NewResolver constructs a resolver around the shared token codec.
func NewResolver(codec *TokenCodec) *Resolver {
	return &Resolver{codec: codec}
}

// Resolve validates the bearer credential and derives the identity. A missing
// or malformed header is rejected before the codec runs; every codec failure
// maps to the same unauthorized error so callers cannot probe token validity.
func (r *Resolver) Resolve(authHeader string) (*Identity, error) {
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := r.codec.Verify(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	return &Identity{
		Principal:   claims.Subject,
		Authorities: []string{NormalizeAuthority(claims.Role)},
	}, nil
}

// NormalizeAuthority promotes a bare role to its canonical prefixed form. An
// absent role still yields a valid low-privilege authority.
func NormalizeAuthority(role string) string {
	if role == "" {
		return AuthorityDefault
	}
	if strings.HasPrefix(role, authorityPrefix) {
		return role
	}
	return authorityPrefix + role
}

// Middleware enforces authentication and stores the identity for handlers.
func (r *Resolver) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := r.Resolve(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
