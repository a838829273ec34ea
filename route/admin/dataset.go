package admin

import (
	"io"
	"net/http"

	v "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

type datasetBody struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Records     []*S.RecordIngestInput `json:"records"`
}

type datasetCSVResponse struct {
	Dataset      *model.DatasetEntity `json:"dataset"`
	CreatedCount int                  `json:"createdCount"`
	SkippedLines int                  `json:"skippedLines"`
}

// createDataset godoc
// @summary レコードの一括指定でデータセットを登録する。
// @tags [admin] Dataset
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset body datasetBody true "データセットとレコード。"
// @success 201 {object} model.DatasetEntity "登録されたデータセット。"
// @failure 400 {object} shared.ErrorResponse "バリデーションエラー。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "管理者権限がない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/datasets [post]
func createDataset(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	body := &datasetBody{}

	if e := c.Bind(body); e != nil {
		return e
	}

	if e := (v.Errors{
		"name": v.Validate(body.Name, v.Required, v.Length(1, 128)),
	}).Filter(); e != nil {
		return e
	}

	service := shared.CreateService(S.DatasetTxService{}, c).(*S.DatasetTxService)

	dataset, err := service.Register(body.Name, body.Description, me.Id, body.Records)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataset)
}

// createDatasetFromCSV godoc
// @summary CSVファイルからデータセットを登録する。列数の不足する行はスキップされる。
// @tags [admin] Dataset
// @accept mpfd
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param name formData string true "データセット名。"
// @param description formData string false "説明。"
// @param file formData file true "CSVファイル。"
// @success 201 {object} datasetCSVResponse "取り込み結果。"
// @failure 400 {object} shared.ErrorResponse "有効な行が存在しない。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "管理者権限がない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/datasets/csv [post]
func createDatasetFromCSV(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	name := c.FormValue("name")
	description := c.FormValue("description")

	if e := (v.Errors{
		"name": v.Validate(name, v.Required, v.Length(1, 128)),
	}).Filter(); e != nil {
		return e
	}

	file, err := c.FormFile("file")

	if err != nil {
		return err
	}

	src, err := file.Open()

	if err != nil {
		return err
	}
	defer src.Close()

	content, err := io.ReadAll(src)

	if err != nil {
		return err
	}

	service := shared.CreateService(S.DatasetTxService{}, c).(*S.DatasetTxService)

	dataset, skipped, err := service.RegisterFromCSV(name, description, me.Id, string(content))

	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &datasetCSVResponse{
		Dataset:      dataset,
		CreatedCount: dataset.RecordCount,
		SkippedLines: skipped,
	})
}

// deleteDataset godoc
// @summary データセットを配下のレコード・アノテーション・波形ごと削除する。
// @tags [admin] Dataset
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @success 204 "処理に成功。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "管理者権限がない。"
// @failure 404 {object} shared.ErrorResponse "データセットが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/datasets/{dataset_uuid} [delete]
func deleteDataset(c *shared.Context) error {
	service := shared.CreateService(S.DatasetTxService{}, c).(*S.DatasetTxService)

	if e := service.Delete(c.Param("dataset_uuid")); e != nil {
		return e
	}

	return c.NoContent(http.StatusNoContent)
}
