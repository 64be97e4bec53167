package serverutils

import (
	"os"

	"event-reg-be/internal/lifecycle"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JwtMiddleware parses the bearer token and stores user_id, role and
// region in the request locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	ctx.Locals("user_id", claims["user_id"])
	if role, ok := claims["role"].(string); ok {
		ctx.Locals("role", role)
	}
	if region, ok := claims["region"].(string); ok {
		ctx.Locals("region", region)
	}
	return ctx.Next()
}

// RequireRoles rejects requests whose token role is not in the allowed
// set. Must run after JwtMiddleware.
func RequireRoles(roles ...lifecycle.Role) fiber.Handler {
	allowed := make(map[lifecycle.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("role").(string)
		if _, ok := allowed[lifecycle.Role(role)]; !ok {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Insufficient role"})
		}
		return ctx.Next()
	}
}

// ActorFromLocals reconstructs the acting identity set by JwtMiddleware.
func ActorFromLocals(ctx *fiber.Ctx) (lifecycle.Actor, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return lifecycle.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
	}
	role, _ := ctx.Locals("role").(string)
	region, _ := ctx.Locals("region").(string)
	return lifecycle.Actor{
		UserID: userId,
		Role:   lifecycle.Role(role),
		Region: region,
	}, nil
}
