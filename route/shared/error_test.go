package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/config"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
)

func errorContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextI18NLangKey, lib.NewLocalizer("en", ""))

	return c, rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) *ErrorResponse {
	response := &ErrorResponse{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	return response
}

func Test_APIErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{
			constant.NewBadRequestError("empty_records", "At least one record is required", map[string]interface{}{}),
			http.StatusBadRequest,
			"empty_records",
		},
		{
			constant.NewUnauthorizedError("unauthorized", "Your token is not valid", map[string]interface{}{}),
			http.StatusUnauthorized,
			"unauthorized",
		},
		{
			constant.NewForbiddenError("review_not_allowed", "Reviewing requires expert or admin role", map[string]interface{}{}),
			http.StatusForbidden,
			"review_not_allowed",
		},
		{
			constant.NewNotFoundError("dataset_not_found", "Dataset is not found", map[string]interface{}{}),
			http.StatusNotFound,
			"dataset_not_found",
		},
	}

	for _, tc := range cases {
		c, rec := errorContext(t)

		APIErrorHandler(tc.err, c)

		assert.Equal(t, tc.status, rec.Code)

		response := decodeErrorResponse(t, rec)
		assert.Equal(t, tc.code, response.Code)
	}
}

func Test_APIErrorHandler_ValidationErrors(t *testing.T) {
	c, rec := errorContext(t)

	APIErrorHandler(validation.Errors{
		"status": fmt.Errorf("invalid status"),
	}, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	response := decodeErrorResponse(t, rec)
	assert.Equal(t, ErrorCode_ValidationError, response.Code)
	assert.Contains(t, response.Details, "status")
}

func Test_APIErrorHandler_GenericError(t *testing.T) {
	c, rec := errorContext(t)

	APIErrorHandler(fmt.Errorf("unexpected"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func Test_APIErrorHandler_EchoHTTPError(t *testing.T) {
	c, rec := errorContext(t)

	APIErrorHandler(echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), c)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
