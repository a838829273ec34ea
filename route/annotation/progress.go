package annotation

import (
	"net/http"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

type activityListResponse struct {
	Activities []*model.ActivityEntry `json:"activities"`
}

// fetchProgress godoc
// @summary データセット内の自身の進捗を取得する。
// @tags [annotation] Progress
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @success 200 {object} model.UserProgress "進捗。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 404 {object} shared.ErrorResponse "データセットが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets/{dataset_uuid}/progress [get]
func fetchProgress(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	dataset, err := fetchDatasetByPath(c)

	if err != nil {
		return err
	}

	service := shared.CreateService(S.ProgressService{}, c).(*S.ProgressService)

	progress, err := service.UserProgress(me.Id, dataset.Id)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, progress)
}

// fetchResumePoint godoc
// @summary データセットの作業再開位置を取得する。
// @tags [annotation] Progress
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param dataset_uuid path string true "データセットUUID。"
// @success 200 {object} model.ResumePoint "再開位置。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 404 {object} shared.ErrorResponse "データセットが存在しない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/datasets/{dataset_uuid}/resume [get]
func fetchResumePoint(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	dataset, err := fetchDatasetByPath(c)

	if err != nil {
		return err
	}

	service := shared.CreateService(S.NavigationService{}, c).(*S.NavigationService)

	resume, err := service.ResumeIndex(me.Id, dataset.Id)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resume)
}

// fetchMyStats godoc
// @summary 自身の横断統計を取得する。
// @tags [annotation] Progress
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @success 200 {object} model.UserStats "統計。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/me/stats [get]
func fetchMyStats(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	service := shared.CreateService(S.ProgressService{}, c).(*S.ProgressService)

	stats, err := service.UserStats(me.Id)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// listMyActivities godoc
// @summary 自身の全アノテーションをレコード・データセット情報付きで新しい順に取得する。
// @tags [annotation] Progress
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param status query string false "絞り込む状態。confirmed/unsure/reviewedのいずれか。"
// @success 200 {object} activityListResponse "活動一覧。"
// @failure 400 {object} shared.ErrorResponse "状態が不正。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /annotation/me/activities [get]
func listMyActivities(c *shared.Context) error {
	me := c.Get(shared.ContextMeKey).(*model.Annotator)

	var status *C.AnnotationStatus

	if param := c.QueryParam("status"); param != "" {
		value := C.AnnotationStatus(param)
		status = &value
	}

	service := shared.CreateService(S.ProgressService{}, c).(*S.ProgressService)

	activities, err := service.UserActivities(me.Id, status)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &activityListResponse{
		Activities: activities,
	})
}
