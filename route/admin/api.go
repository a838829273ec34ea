package admin

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
)

func RegisterAPI(e *echo.Echo) {
	router := e.Group("/admin")

	router.Use(
		middleware.JWTWithConfig(middleware.JWTConfig{
			ContextKey: shared.ContextJWTTokenKey,
			SigningKey: []byte(lib.GetSecret()),
		}),
		shared.AuthenticateAnnotator,
		shared.RequireRole(C.RoleAdmin),
	)

	registerAPIs(router)
}

func registerAPIs(router *echo.Group) {
	// データセット取り込み。
	router.POST("/datasets", shared.C(createDataset))
	router.POST("/datasets/csv", shared.C(createDatasetFromCSV))
	router.DELETE("/datasets/:dataset_uuid", shared.C(deleteDataset))

	// アノテーター。
	router.POST("/annotators", shared.C(createAnnotator))

	// 統計。
	router.GET("/stats", shared.C(fetchPlatformStats))
	router.GET("/activities", shared.C(listRecentActivities))
}
