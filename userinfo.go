package bearer

// UserInfo is a read-only, transport friendly snapshot of the principal
// resolved during token validation. It is built once per request and
// discarded with it.
type UserInfo struct {
	IsAuthenticated bool     `json:"is_authenticated"`
	NameClaimType   string   `json:"name_claim_type,omitempty"`
	RoleClaimType   string   `json:"role_claim_type,omitempty"`
	Token           string   `json:"token,omitempty"`
	Claims          ClaimSet `json:"claims,omitempty"`
}

// Anonymous is the shared unauthenticated snapshot. Treat it as immutable.
var Anonymous = &UserInfo{}

// ProjectUserInfo maps a verified claim set (plus the raw token) into a
// UserInfo. When authenticated is false it returns Anonymous regardless of
// the other inputs. Otherwise the claims list carries every name-type claim
// first, keeping their relative order, followed by the remaining claims in
// order. The reordering is a presentation contract for consumers, not where
// the authoritative subject identifier lives.
func ProjectUserInfo(authenticated bool, claims ClaimSet, token string) *UserInfo {
	if !authenticated {
		return Anonymous
	}

	ordered := make(ClaimSet, 0, len(claims))
	for _, c := range claims {
		if c.Kind == ClaimKindName {
			ordered = append(ordered, c)
		}
	}
	for _, c := range claims {
		if c.Kind != ClaimKindName {
			ordered = append(ordered, c)
		}
	}

	return &UserInfo{
		IsAuthenticated: true,
		NameClaimType:   ClaimTypeName,
		RoleClaimType:   ClaimTypeRole,
		Token:           token,
		Claims:          ordered,
	}
}

// Name returns the first name-type claim value, or "" for Anonymous.
func (u *UserInfo) Name() string {
	c, _ := u.Claims.First(ClaimKindName)
	return c.Value
}

// HasRole reports whether the snapshot carries the given role claim.
func (u *UserInfo) HasRole(role string) bool {
	return u.Claims.HasRole(role)
}
