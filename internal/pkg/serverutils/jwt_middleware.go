package serverutils

import (
	"strings"

	"booknotion-be/internal/apperror"
	"booknotion-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the jwt middleware.
const (
	LocalsUserId = "user_id"
	LocalsClaims = "claims"
)

// NewJwtMiddleware authenticates requests from the Authorization bearer
// header. A missing token is 401; a present but unverifiable token is 403.
func NewJwtMiddleware(tokenService *token.Service) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || raw == "" {
			return apperror.Auth("Access token required")
		}

		claims, err := tokenService.Verify(raw)
		if err != nil {
			return apperror.Forbidden("Invalid or expired token")
		}

		ctx.Locals(LocalsUserId, claims.UserId.String())
		ctx.Locals(LocalsClaims, claims)
		return ctx.Next()
	}
}
