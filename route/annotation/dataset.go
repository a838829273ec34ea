package annotation

import (
	"net/http"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

type datasetListResponse struct {
	Datasets []*model.DatasetEntity `json:"datasets"`
}

type recordListResponse struct {
	Records []*model.Record `json:"records"`
}

// listDatasets godoc
// @summary 有効なデータセットの一覧を取得する。
// @tags [annotation] Dataset
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @success 200 {object} datasetListResponse "データセット一覧。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets [get]
func listDatasets(c *shared.Context) error {
	service := shared.CreateService(S.DatasetService{}, c).(*S.DatasetService)

	datasets, err := service.List()

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &datasetListResponse{
		Datasets: datasets,
	})
}

// fetchDataset godoc
// @summary データセットを取得する。
// @tags [annotation] Dataset
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @success 200 {object} model.Dataset "データセット。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 404 {object} shared.ErrorResponse "データセットが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets/{dataset_uuid} [get]
func fetchDataset(c *shared.Context) error {
	service := shared.CreateService(S.DatasetService{}, c).(*S.DatasetService)

	dataset, err := service.FetchByUuid(c.Param("dataset_uuid"))

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataset)
}

// listRecords godoc
// @summary データセット内のレコードを取り込み順に取得する。波形は含まない。
// @tags [annotation] Record
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @success 200 {object} recordListResponse "レコード一覧。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 404 {object} shared.ErrorResponse "データセットが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets/{dataset_uuid}/records [get]
func listRecords(c *shared.Context) error {
	service := shared.CreateService(S.DatasetService{}, c).(*S.DatasetService)

	dataset, err := service.FetchByUuid(c.Param("dataset_uuid"))

	if err != nil {
		return err
	}

	records, err := service.ListRecords(dataset.Id)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &recordListResponse{
		Records: records,
	})
}

// fetchRecord godoc
// @summary レコードを誘導波形付きで取得する。
// @tags [annotation] Record
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @param record_id path int true "レコードID。"
// @success 200 {object} model.RecordEntity "波形付きレコード。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 404 {object} shared.ErrorResponse "レコードが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets/{dataset_uuid}/records/{record_id} [get]
func fetchRecord(c *shared.Context) error {
	service := shared.CreateService(S.DatasetService{}, c).(*S.DatasetService)

	dataset, err := service.FetchByUuid(c.Param("dataset_uuid"))

	if err != nil {
		return err
	}

	record, err := service.FetchRecord(dataset.Id, c.IntParam("record_id"))

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}
