package bearer

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/corvid-labs/go-bearer/middleware/jwtware"
)

var userInfoCtxKey = &contextKey{"user_info"}

type contextKey struct {
	name string
}

// WithUserInfo sets the resolved identity on the given context.
func WithUserInfo(ctx context.Context, info *UserInfo) context.Context {
	return context.WithValue(ctx, userInfoCtxKey, info)
}

// UserInfoFromContext finds the resolved identity on the context.
func UserInfoFromContext(ctx context.Context) (*UserInfo, bool) {
	info, ok := ctx.Value(userInfoCtxKey).(*UserInfo)
	return info, ok
}

// UserInfoFromLocals projects the token the jwtware guard stored in fiber
// locals into a UserInfo. Requests that never passed the guard (or carry
// foreign claim types) come back as Anonymous.
func UserInfoFromLocals(c *fiber.Ctx, key string) *UserInfo {
	token, ok := jwtware.TokenFromContext(c, key)
	if !ok {
		return Anonymous
	}

	claims, ok := token.Claims.(ClaimSet)
	if !ok {
		return Anonymous
	}

	return ProjectUserInfo(true, claims, token.Raw)
}
