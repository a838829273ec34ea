package route

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/admin"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/annotation"
	app_middleware "github.com/shivesh2334-ai/ECG-LEVEL-4/route/middleware"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/review"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
)

func NewHandler() *echo.Echo {
	e := echo.New()

	e.HTTPErrorHandler = shared.APIErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(app_middleware.SessionLogger)
	e.Use(app_middleware.I18n)
	e.Use(app_middleware.Transactional)

	annotation.RegisterAPI(e)
	review.RegisterAPI(e)
	admin.RegisterAPI(e)

	return e
}
