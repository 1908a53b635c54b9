package bearer

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimKind enumerates the claim types this package understands. Kinds exist
// so the rest of the code never probes claim-type strings; the conventional
// wire identifiers appear only at the encode/decode boundary.
type ClaimKind uint8

const (
	// ClaimKindCustom carries any claim type outside the well-known set.
	ClaimKindCustom ClaimKind = iota
	// ClaimKindSubject is the stored user's unique identifier.
	ClaimKindSubject
	// ClaimKindName is the username the principal authenticated with.
	ClaimKindName
	// ClaimKindGivenName is the human readable display name.
	ClaimKindGivenName
	// ClaimKindRole is one role membership; a principal carries one claim per
	// distinct role.
	ClaimKindRole
)

// Conventional wire identifiers for the well-known claim kinds.
const (
	ClaimTypeSubject   = "sid"
	ClaimTypeName      = "name"
	ClaimTypeGivenName = "given_name"
	ClaimTypeRole      = "role"
)

// Type returns the wire identifier for a well-known kind, or "" for custom.
func (k ClaimKind) Type() string {
	switch k {
	case ClaimKindSubject:
		return ClaimTypeSubject
	case ClaimKindName:
		return ClaimTypeName
	case ClaimKindGivenName:
		return ClaimTypeGivenName
	case ClaimKindRole:
		return ClaimTypeRole
	}
	return ""
}

// KindForType maps a wire identifier back to its kind.
func KindForType(claimType string) ClaimKind {
	switch claimType {
	case ClaimTypeSubject:
		return ClaimKindSubject
	case ClaimTypeName:
		return ClaimKindName
	case ClaimTypeGivenName:
		return ClaimKindGivenName
	case ClaimTypeRole:
		return ClaimKindRole
	}
	return ClaimKindCustom
}

// Claim is an immutable (type, value) assertion about a principal. The value
// is opaque: nothing here parses it.
type Claim struct {
	Kind  ClaimKind
	Type  string // set only for ClaimKindCustom
	Value string
}

// NewClaim builds a claim for a well-known kind.
func NewClaim(kind ClaimKind, value string) Claim {
	return Claim{Kind: kind, Value: value}
}

// NewCustomClaim builds a claim for an arbitrary claim type. Well-known types
// are normalized onto their kind so equality survives a round trip.
func NewCustomClaim(claimType, value string) Claim {
	if kind := KindForType(claimType); kind != ClaimKindCustom {
		return Claim{Kind: kind, Value: value}
	}
	return Claim{Kind: ClaimKindCustom, Type: claimType, Value: value}
}

// WireType returns the claim type as it appears on the wire.
func (c Claim) WireType() string {
	if c.Kind == ClaimKindCustom {
		return c.Type
	}
	return c.Kind.Type()
}

type claimWire struct {
	Type  string `json:"t"`
	Value string `json:"v"`
}

// MarshalJSON serializes the claim as a compact {"t","v"} pair.
func (c Claim) MarshalJSON() ([]byte, error) {
	return json.Marshal(claimWire{Type: c.WireType(), Value: c.Value})
}

// UnmarshalJSON restores a claim from its wire pair.
func (c *Claim) UnmarshalJSON(data []byte) error {
	var w claimWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = NewCustomClaim(w.Type, w.Value)
	return nil
}

// ClaimSet is the ordered collection of claims for one principal. It is
// assembled append-only at issuance (or reconstructed at validation) and must
// not be mutated afterwards.
type ClaimSet []Claim

// First returns the first claim of the given kind.
func (cs ClaimSet) First(kind ClaimKind) (Claim, bool) {
	for _, c := range cs {
		if c.Kind == kind {
			return c, true
		}
	}
	return Claim{}, false
}

// OfKind returns every claim of the given kind, preserving order.
func (cs ClaimSet) OfKind(kind ClaimKind) ClaimSet {
	var out ClaimSet
	for _, c := range cs {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Roles returns the role claim values in order.
func (cs ClaimSet) Roles() []string {
	var roles []string
	for _, c := range cs {
		if c.Kind == ClaimKindRole {
			roles = append(roles, c.Value)
		}
	}
	return roles
}

// HasRole reports whether the set carries the given role claim.
func (cs ClaimSet) HasRole(role string) bool {
	for _, c := range cs {
		if c.Kind == ClaimKindRole && c.Value == role {
			return true
		}
	}
	return false
}

// TokenClaims is the signed JWT payload: the registered envelope (issuer,
// audience, subject, iat, exp, jti) plus the claim list in assembly order.
type TokenClaims struct {
	jwt.RegisteredClaims
	Claims ClaimSet `json:"claims,omitempty"`
}

// UserID returns the subject identifier carried by the token.
func (t *TokenClaims) UserID() string {
	if c, ok := t.Claims.First(ClaimKindSubject); ok {
		return c.Value
	}
	return t.RegisteredClaims.Subject
}

// Name returns the authenticated username.
func (t *TokenClaims) Name() string {
	c, _ := t.Claims.First(ClaimKindName)
	return c.Value
}

// Roles returns the role memberships embedded in the token.
func (t *TokenClaims) Roles() []string {
	return t.Claims.Roles()
}

// Expires returns the expiration time.
func (t *TokenClaims) Expires() time.Time {
	if t.RegisteredClaims.ExpiresAt != nil {
		return t.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time.
func (t *TokenClaims) IssuedAt() time.Time {
	if t.RegisteredClaims.IssuedAt != nil {
		return t.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
