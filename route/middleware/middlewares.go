package middleware

import (
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
)

func Transactional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := &shared.Context{Context: c}

		// ロールバック後に再パニックし、応答は外側のRecoverに委ねる。
		defer func() {
			if e := recover(); e != nil {
				cc.Rollback()
				log.WithFields(log.Fields{
					"error": e,
				}).Warning("panic occured")
				panic(e)
			}
		}()

		if err := next(cc); err != nil {
			cc.Rollback()
			return err
		}

		cc.Commit()
		return nil
	}
}

func SessionLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := log.WithFields(log.Fields{"request_id": c.Response().Header().Get(echo.HeaderXRequestID)})
		c.Set(shared.ContextSessionLoggerKey, logger)
		return next(c)
	}
}

func I18n(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		acceptLang := c.Request().Header.Get(shared.HeaderAcceptLanguage)
		paramLang := c.QueryParam("lang")

		localizer := lib.NewLocalizer(paramLang, acceptLang)
		c.Set(shared.ContextI18NLangKey, localizer)

		return next(c)
	}
}
