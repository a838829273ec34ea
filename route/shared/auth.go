package shared

import (
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

// AuthenticateAnnotator JWTを検証し、アカウントをコンテキストに設定する。
// トークンバージョンが一致しない場合は失効済みとして拒否する。
func AuthenticateAnnotator(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get(ContextJWTTokenKey).(*jwt.Token)

		if !ok {
			return constant.NewUnauthorizedError(
				"token_not_found",
				"Token was parsed but missed unexpectedly",
				map[string]interface{}{},
			)
		}

		me, err := lib.Authenticate(token, func(authId string, version string) (interface{}, error) {
			service := CreateService(S.AnnotatorService{}, c).(*S.AnnotatorService)

			annotator, err := service.Authenticate(authId, version)

			return annotator, err
		})

		if err != nil {
			if e, ok := err.(constant.AppError); ok {
				return e
			} else {
				return constant.NewUnauthorizedError(
					"unauthorized",
					err.Error(),
					map[string]interface{}{},
				)
			}
		}

		c.Set(ContextMeKey, me)

		return next(c)
	}
}

// RequireRole 認証済みアカウントの役割を検査する。
func RequireRole(roles ...constant.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			me, ok := c.Get(ContextMeKey).(*model.Annotator)

			if !ok {
				return constant.NewUnauthorizedError(
					"unauthorized",
					"Authentication is required",
					map[string]interface{}{},
				)
			}

			for _, role := range roles {
				if me.Role == role {
					return next(c)
				}
			}

			return constant.NewForbiddenError(
				"role_not_allowed",
				"Your role is not allowed to access this API",
				map[string]interface{}{},
			)
		}
	}
}
