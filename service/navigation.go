package service

import (
	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/rds"
)

type NavigationService struct {
	*Service
	DB *gorp.DbMap
}

// ユーザーがデータセットの作業を再開すべき位置を求める。
// 最後に保存したレコードの次から再開し、最終レコードまで保存済みの場合は
// 先頭に巻き戻す。未着手の場合は先頭から開始する。
func (s *NavigationService) ResumeIndex(annotatorId int, datasetId int) (*model.ResumePoint, error) {
	latest, err := rds.FetchLatestAnnotation(s.DB, annotatorId, datasetId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	if latest == nil {
		return &model.ResumePoint{Index: 0, Done: false}, nil
	}

	ids, err := rds.ListRecordIdsInDataset(s.DB, datasetId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	index, done := model.ResumePosition(ids, latest.RecordId)

	return &model.ResumePoint{Index: index, Done: done}, nil
}

// 前のレコード位置を返す。先頭で止まり、巻き戻しは行わない。
func (s *NavigationService) PreviousIndex(index int) int {
	if index <= 0 {
		return 0
	}
	return index - 1
}

// 次のレコード位置を返す。末尾で止まり、巻き戻しは行わない。
func (s *NavigationService) NextIndex(index int, total int) int {
	if index >= total-1 {
		if total == 0 {
			return 0
		}
		return total - 1
	}
	return index + 1
}
