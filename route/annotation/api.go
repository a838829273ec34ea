package annotation

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
)

func RegisterAPI(e *echo.Echo) {
	e.POST("/annotation/login", shared.C(login))
	e.POST("/annotation/signup", shared.C(signup))

	router := e.Group("/annotation")

	router.Use(
		middleware.JWTWithConfig(middleware.JWTConfig{
			ContextKey: shared.ContextJWTTokenKey,
			SigningKey: []byte(lib.GetSecret()),
		}),
		shared.AuthenticateAnnotator,
	)

	registerAPIs(router)
}

func registerAPIs(router *echo.Group) {
	// ログイン。
	router.DELETE("/login", shared.C(logout))

	// データセット。
	router.GET("/datasets", shared.C(listDatasets))
	router.GET("/datasets/:dataset_uuid", shared.C(fetchDataset))

	// レコード。
	router.GET("/datasets/:dataset_uuid/records", shared.C(listRecords))
	router.GET("/datasets/:dataset_uuid/records/:record_id", shared.C(fetchRecord))

	// アノテーション。
	router.GET("/datasets/:dataset_uuid/records/:record_id/annotation", shared.C(fetchMyAnnotation))
	router.PUT("/datasets/:dataset_uuid/records/:record_id/annotation", shared.C(saveAnnotation))
	router.GET("/datasets/:dataset_uuid/annotations", shared.C(listMyAnnotations))

	// 進捗・再開位置。
	router.GET("/datasets/:dataset_uuid/progress", shared.C(fetchProgress))
	router.GET("/datasets/:dataset_uuid/resume", shared.C(fetchResumePoint))

	// 統計。
	router.GET("/me/stats", shared.C(fetchMyStats))
	router.GET("/me/activities", shared.C(listMyActivities))
}
