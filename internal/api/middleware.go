package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/utils"
	"github.com/spf13/viper"
)

// RequestIDMiddleware tags each request with a uuid the logger picks up.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()
		reqCtx := context.WithValue(req.Context(), constants.CtxKeyRequestID, uuid.NewString())
		ctx.SetRequest(req.WithContext(reqCtx))

		return next(ctx)
	}
}

// AdminMiddleware guards the import/edit/backfill routes with the shared
// admin secret. There is no user model behind it.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}
