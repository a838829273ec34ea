package admin

import (
	"net/http"
	"strconv"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

const defaultActivityLimit = 20

type activityListResponse struct {
	Activities []*model.ActivityEntry `json:"activities"`
}

// fetchPlatformStats godoc
// @summary プラットフォーム全体の件数を取得する。
// @tags [admin] Stats
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @success 200 {object} model.PlatformStats "統計。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "管理者権限がない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/stats [get]
func fetchPlatformStats(c *shared.Context) error {
	service := shared.CreateService(S.ProgressService{}, c).(*S.ProgressService)

	stats, err := service.PlatformStats()

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// listRecentActivities godoc
// @summary 直近のアノテーション活動を新しい順に取得する。
// @tags [admin] Stats
// @produce json
// @param Authorization header string true "Bearerトークン。"
// @param limit query int false "最大取得件数。既定は20。"
// @success 200 {object} activityListResponse "活動一覧。"
// @failure 401 {object} shared.ErrorResponse "認証に失敗。"
// @failure 403 {object} shared.ErrorResponse "管理者権限がない。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /admin/activities [get]
func listRecentActivities(c *shared.Context) error {
	limit := defaultActivityLimit

	if param := c.QueryParam("limit"); param != "" {
		if n, e := strconv.Atoi(param); e == nil && n > 0 {
			limit = n
		}
	}

	service := shared.CreateService(S.ProgressService{}, c).(*S.ProgressService)

	activities, err := service.RecentActivity(limit)

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &activityListResponse{
		Activities: activities,
	})
}
