package http

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

var ErrMissingPrincipal = errors.New("request has no authenticated principal")

// Authenticator turns a Bearer token into an access.Principal. The token is an
// HS256 JWT whose subject is the numeric user id; permissions are always
// resolved from the store, never read from the token.
type Authenticator struct {
	secret   []byte
	resolver ports.PermissionResolver
	logger   *slog.Logger
}

func NewAuthenticator(secret []byte, resolver ports.PermissionResolver, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		secret:   secret,
		resolver: resolver,
		logger:   logger.With("component", "http_auth"),
	}
}

// Middleware rejects requests without a valid token and stores the resolved
// principal in the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			userID, err := a.userID(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return unauthorized(ctx, err.Error())
			}

			principal, err := a.resolver.ResolvePrincipal(ctx.Request().Context(), userID)
			if err != nil {
				return writeError(ctx, a.logger, err)
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

func (a *Authenticator) userID(header string) (int64, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, errors.New("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(_ *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid token subject")
	}
	return userID, nil
}

// principalFrom returns the principal stored by the middleware.
func principalFrom(ctx echo.Context) (access.Principal, error) {
	principal, ok := ctx.Get(principalContextKey).(access.Principal)
	if !ok {
		return access.Principal{}, ErrMissingPrincipal
	}
	return principal, nil
}
