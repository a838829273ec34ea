package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func Test_Transactional_ReturnsHandlerError(t *testing.T) {
	expected := fmt.Errorf("handler failed")

	handler := Transactional(func(c echo.Context) error {
		return expected
	})

	assert.Equal(t, expected, handler(testContext()))
}

// ハンドラのパニックはロールバック処理を経た上で外側のRecoverまで伝播する。
func Test_Transactional_RepanicsAfterRollback(t *testing.T) {
	handler := Transactional(func(c echo.Context) error {
		panic(fmt.Errorf("boom"))
	})

	assert.Panics(t, func() {
		handler(testContext())
	})
}
