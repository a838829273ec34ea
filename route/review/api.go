package review

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
)

func RegisterAPI(e *echo.Echo) {
	router := e.Group("/review")

	router.Use(
		middleware.JWTWithConfig(middleware.JWTConfig{
			ContextKey: shared.ContextJWTTokenKey,
			SigningKey: []byte(lib.GetSecret()),
		}),
		shared.AuthenticateAnnotator,
		shared.RequireRole(C.RoleExpert, C.RoleAdmin),
	)

	registerAPIs(router)
}

func registerAPIs(router *echo.Group) {
	// レビュー。
	router.GET("/datasets/:dataset_uuid/records/:record_id/annotations", shared.C(listAnnotationViews))
	router.POST("/annotations/:annotation_id/review", shared.C(reviewAnnotation))
	router.GET("/annotations/:annotation_id/history", shared.C(listAnnotationHistory))

	// カバレッジ。
	router.GET("/datasets/:dataset_uuid/coverage", shared.C(fetchCoverage))
}
