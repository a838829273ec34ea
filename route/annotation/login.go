package annotation

import (
	"net/http"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string           `json:"accessToken"`
	Annotator   *model.Annotator `json:"annotator"`
}

type signupBody struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	HospitalName string `json:"hospitalName"`
}

// login godoc
// @summary パスワード認証を行い、トークンを取得する。
// @tags [annotation] Login
// @produce json
// @param login body loginBody true "ログイン情報。"
// @success 200 {object} loginResponse "アクセストークンとアカウント情報。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/login [post]
func login(c *shared.Context) error {
	body := &loginBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"username": v.Validate(body.Username, v.Required),
		"password": v.Validate(body.Password, v.Required),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.AnnotatorService{}, c).(*S.AnnotatorService)

	me, err := service.Login(body.Username, body.Password)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &loginResponse{
		AccessToken: shared.CreateTokenWithStandardClaims(me.Username, me.TokenVersion),
		Annotator:   me,
	})
}

// signup godoc
// @summary アカウントを登録し、トークンを取得する。
// @tags [annotation] Login
// @produce json
// @param signup body signupBody true "登録情報。"
// @success 200 {object} loginResponse "アクセストークンとアカウント情報。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/signup [post]
func signup(c *shared.Context) error {
	body := &signupBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"username":     v.Validate(body.Username, v.Required, v.Length(1, 64)),
		"email":        v.Validate(body.Email, v.Required, is.Email),
		"password":     v.Validate(body.Password, v.Required, v.Length(8, 128)),
		"role":         v.Validate(body.Role, v.Required),
		"hospitalName": v.Validate(body.HospitalName, v.Length(0, 128)),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.AnnotatorTxService{}, c).(*S.AnnotatorTxService)

	me, err := service.Register(body.Username, body.Email, body.Password, C.Role(body.Role), body.HospitalName)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &loginResponse{
		AccessToken: shared.CreateTokenWithStandardClaims(me.Username, me.TokenVersion),
		Annotator:   me,
	})
}

// logout godoc
// @summary ログアウトして、アクセストークンを無効化する。
// @tags [annotation] Login
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @success 204 "処理に成功。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/login [delete]
func logout(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	service := shared.CreateService(S.AnnotatorTxService{}, c).(*S.AnnotatorTxService)

	err := service.UpdateVersion(me.Id)

	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
