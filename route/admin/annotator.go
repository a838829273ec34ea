package admin

import (
	"net/http"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

type annotatorBody struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	HospitalName string `json:"hospitalName"`
}

// createAnnotator godoc
// @summary 任意の役割のアカウントを登録する。
// @tags [admin] Annotator
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param annotator body annotatorBody true "アカウント情報。"
// @success 201 {object} model.Annotator "登録されたアカウント。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "管理者権限がない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/annotators [post]
func createAnnotator(c *shared.Context) error {
	body := &annotatorBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"username": v.Validate(body.Username, v.Required, v.Length(1, 64)),
		"email":    v.Validate(body.Email, v.Required, is.Email),
		"password": v.Validate(body.Password, v.Required, v.Length(8, 128)),
		"role":     v.Validate(body.Role, v.Required),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.AnnotatorTxService{}, c).(*S.AnnotatorTxService)

	annotator, err := service.Register(body.Username, body.Email, body.Password, C.Role(body.Role), body.HospitalName)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, annotator)
}
