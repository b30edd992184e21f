package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"stayhub/internal/auth"
	"stayhub/internal/config"
	"stayhub/internal/handler"
	"stayhub/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	roomHandler *handler.RoomHandler,
	reservationHandler *handler.ReservationHandler,
	reviewHandler *handler.ReviewHandler,
	contactHandler *handler.ContactHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/rooms", roomHandler.ListRooms)
	api.GET("/rooms/:id", roomHandler.GetRoom)
	api.GET("/rooms/:id/reviews", reviewHandler.ListReviews)

	api.POST("/contact", contactHandler.CreateMessage)
	api.GET("/contact", contactHandler.ListByEmail)

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})

	// Secured routes (require JWT authentication and a live user record)
	secured := api.Group("", jwtMiddleware, loadUser(authService))

	secured.GET("/me", authHandler.Me)

	secured.GET("/reservations", reservationHandler.ListReservations)
	secured.POST("/reservations", reservationHandler.CreateReservation)
	secured.PATCH("/reservations/:id/cancel", reservationHandler.CancelReservation)

	secured.POST("/rooms/:id/reviews", reviewHandler.CreateReview)

	// Admin routes
	admin := api.Group("", jwtMiddleware, loadUser(authService), requireAdmin)

	admin.POST("/rooms", roomHandler.CreateRoom)
	admin.PUT("/rooms/:id", roomHandler.UpdateRoom)
	admin.DELETE("/rooms/:id", roomHandler.DeleteRoom)

	admin.GET("/admin/contact-messages", contactHandler.ListMessages)
	admin.POST("/admin/contact-messages/:id/reply", contactHandler.Reply)
}

// loadUser resolves the JWT subject to a live user record so downstream
// handlers see current admin flags, not the ones baked into the token.
func loadUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := authService.GetUser(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// requireAdmin rejects non-admin users. It answers 401 without revealing
// whether the target resource exists.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := handler.CurrentUser(c)
		if err != nil {
			return err
		}
		if !user.IsAdmin {
			return echo.NewHTTPError(http.StatusUnauthorized, "admin required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
