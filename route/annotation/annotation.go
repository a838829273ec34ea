package annotation

import (
	"net/http"

	v "github.com/go-ozzo/ozzo-validation/v4"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

type annotationBody struct {
	Content         string   `json:"content"`
	Findings        string   `json:"findings"`
	Status          string   `json:"status"`
	ConfidenceScore *float64 `json:"confidenceScore"`
}

type annotationListResponse struct {
	Annotations []*model.Annotation `json:"annotations"`
}

// fetchMyAnnotation godoc
// @summary 自身のアノテーションを取得する。未保存の場合は204を返す。
// @tags [annotation] Annotation
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @param record_id path int true "レコードID。"
// @success 200 {object} model.Annotation "アノテーション。"
// @success 204 "未保存。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 404 {object} shared.ErrorResponse "レコードが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets/{dataset_uuid}/records/{record_id}/annotation [get]
func fetchMyAnnotation(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	dataset, recordId, err := resolveRecordPath(c)

	if err != nil {
		return err
	}

	service := shared.CreateService(S.AnnotationService{}, c).(*S.AnnotationService)

	annotation, err := service.Fetch(me.Id, dataset.Id, recordId)

	if err != nil {
		return err
	}

	if annotation == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, annotation)
}

// saveAnnotation godoc
// @summary アノテーションを保存する。既存の判定がある場合は上書きする。
// @tags [annotation] Annotation
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @param record_id path int true "レコードID。"
// @param annotation body annotationBody true "判定内容。"
// @success 200 {object} model.Annotation "保存されたアノテーション。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 404 {object} shared.ErrorResponse "レコードが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets/{dataset_uuid}/records/{record_id}/annotation [put]
func saveAnnotation(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	body := &annotationBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"content": v.Validate(body.Content, v.Required),
		"status":  v.Validate(body.Status, v.Required, v.In(string(C.StatusConfirmed), string(C.StatusUnsure))),
		"confidenceScore": v.Validate(body.ConfidenceScore, v.By(func(value interface{}) error {
			if score, ok := value.(*float64); ok && score != nil {
				return v.Validate(*score, v.Min(0.0), v.Max(1.0))
			}
			return nil
		})),
	}).Filter(); e != nil {
		return e
	}

	dataset, recordId, err := resolveRecordPath(c)

	if err != nil {
		return err
	}

	service := shared.CreateService(S.AnnotationTxService{}, c).(*S.AnnotationTxService)

	annotation, err := service.Save(me, dataset.Id, recordId, &S.AnnotationInput{
		Content:         body.Content,
		Findings:        body.Findings,
		Status:          body.Status,
		ConfidenceScore: body.ConfidenceScore,
	})

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, annotation)
}

// listMyAnnotations godoc
// @summary データセット内の自身のアノテーションを保存時刻の新しい順に取得する。
// @tags [annotation] Annotation
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @success 200 {object} annotationListResponse "アノテーション一覧。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 404 {object} shared.ErrorResponse "データセットが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets/{dataset_uuid}/annotations [get]
func listMyAnnotations(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	dataset, err := fetchDatasetByPath(c)

	if err != nil {
		return err
	}

	service := shared.CreateService(S.AnnotationService{}, c).(*S.AnnotationService)

	annotations, err := service.ListByUserInDataset(me.Id, dataset.Id)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &annotationListResponse{
		Annotations: annotations,
	})
}
