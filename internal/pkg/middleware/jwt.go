package middleware

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/nebengjek-tracking/internal/pkg/jwt"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/pkg/requestcontext"
	"github.com/piresc/nebengjek-tracking/internal/utils"
)

const (
	contextKeyUserID = "user_id"
	contextKeyRole   = "role"
)

// JWTAuthMiddleware verifies the bearer token and exposes (user_id, role) on the Echo context.
// WebSocket clients that cannot set headers may pass the token as ?token=.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ,query:token",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtpkg.ValidateToken(auth, config.Secret)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get("user").(*jwtpkg.Claims)
			if !ok {
				return
			}
			SetCaller(c, models.Caller{UserID: claims.UserID, Role: claims.Role})

			ctx := c.Request().Context()
			ctx = requestcontext.WithUserID(ctx, claims.UserID)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return utils.UnauthorizedResponse(c, "Invalid or missing token")
		},
	})
}

// SetCaller stores the authenticated identity on the Echo context
func SetCaller(c echo.Context, caller models.Caller) {
	c.Set(contextKeyUserID, caller.UserID)
	c.Set(contextKeyRole, caller.Role)
}

// CallerFromContext returns the identity set by JWTAuthMiddleware
func CallerFromContext(c echo.Context) (models.Caller, bool) {
	userID, _ := c.Get(contextKeyUserID).(string)
	role, _ := c.Get(contextKeyRole).(string)
	if userID == "" || role == "" {
		return models.Caller{}, false
	}
	return models.Caller{UserID: userID, Role: role}, true
}
