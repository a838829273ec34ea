package review

import (
	"net/http"

	v "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

type reviewBody struct {
	Notes string `json:"notes"`
}

type annotationViewListResponse struct {
	Annotations []*model.AnnotationView `json:"annotations"`
}

type historyListResponse struct {
	History []*model.AnnotationHistory `json:"history"`
}

// listAnnotationViews godoc
// @summary あるレコードに対する全アノテーターの判定を取得する。
// @tags [review] Review
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @param record_id path int true "レコードID。"
// @success 200 {object} annotationViewListResponse "アノテーション一覧。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "レビュー権限がない。"
// @failure 404 {object} shared.ErrorResponse "レコードが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /review/datasets/{dataset_uuid}/records/{record_id}/annotations [get]
func listAnnotationViews(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	datasetService := shared.CreateService(S.DatasetService{}, c).(*S.DatasetService)

	dataset, err := datasetService.FetchByUuid(c.Param("dataset_uuid"))

	if err != nil {
		return err
	}

	service := shared.CreateService(S.ReviewService{}, c).(*S.ReviewService)

	views, err := service.ViewForRecord(me, dataset.Id, c.IntParam("record_id"))

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &annotationViewListResponse{
		Annotations: views,
	})
}

// reviewAnnotation godoc
// @summary アノテーションをレビュー済みにする。
// @tags [review] Review
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param annotation_id path int true "アノテーションID。"
// @param review body reviewBody true "レビュー内容。"
// @success 200 {object} model.Annotation "レビュー済みのアノテーション。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "レビュー権限がない。"
// @failure 404 {object} shared.ErrorResponse "アノテーションが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /review/annotations/{annotation_id}/review [post]
func reviewAnnotation(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	body := &reviewBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"notes": v.Validate(body.Notes, v.Length(0, 2000)),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.AnnotationTxService{}, c).(*S.AnnotationTxService)

	annotation, err := service.Review(me, c.IntParam("annotation_id"), body.Notes)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, annotation)
}

// listAnnotationHistory godoc
// @summary アノテーションの変更履歴を古い順に取得する。
// @tags [review] Review
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param annotation_id path int true "アノテーションID。"
// @success 200 {object} historyListResponse "履歴一覧。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "レビュー権限がない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /review/annotations/{annotation_id}/history [get]
func listAnnotationHistory(c *shared.Context) error {
	service := shared.CreateService(S.AnnotationService{}, c).(*S.AnnotationService)

	history, err := service.ListHistory(c.IntParam("annotation_id"))

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &historyListResponse{
		History: history,
	})
}

// fetchCoverage godoc
// @summary データセット全体のカバレッジを取得する。
// @tags [review] Review
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @success 200 {object} model.DatasetCoverage "カバレッジ。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "レビュー権限がない。"
// @failure 404 {object} shared.ErrorResponse "データセットが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /review/datasets/{dataset_uuid}/coverage [get]
func fetchCoverage(c *shared.Context) error {
	datasetService := shared.CreateService(S.DatasetService{}, c).(*S.DatasetService)

	dataset, err := datasetService.FetchByUuid(c.Param("dataset_uuid"))

	if err != nil {
		return err
	}

	service := shared.CreateService(S.ProgressService{}, c).(*S.ProgressService)

	coverage, err := service.DatasetCoverage(dataset.Id)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, coverage)
}
