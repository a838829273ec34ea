package service

import (
	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/rds"
)

type ProgressService struct {
	*Service
	DB *gorp.DbMap
}

// あるユーザーのデータセット進捗を取得する。分子は相異なるレコード数であり、
// 同一レコードへの上書き保存では増えない。
func (s *ProgressService) UserProgress(annotatorId int, datasetId int) (*model.UserProgress, error) {
	total, err := rds.CountRecordsInDataset(s.DB, datasetId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	annotated, err := rds.CountAnnotatedByUser(s.DB, annotatorId, datasetId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	return &model.UserProgress{
		Annotated:  annotated,
		Total:      total,
		Percentage: model.CompletionRate(annotated, total),
	}, nil
}

// データセット全体のカバレッジを取得する。誰か一人でも判定したレコードを一件と数える。
func (s *ProgressService) DatasetCoverage(datasetId int) (*model.DatasetCoverage, error) {
	total, err := rds.CountRecordsInDataset(s.DB, datasetId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	annotated, annotators, err := rds.AggregateDatasetCoverage(s.DB, datasetId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	return &model.DatasetCoverage{
		TotalRecords:       total,
		AnnotatedRecords:   annotated,
		DistinctAnnotators: annotators,
		CoveragePct:        model.CompletionRate(annotated, total),
	}, nil
}

// ユーザーの横断統計を取得する。
func (s *ProgressService) UserStats(annotatorId int) (*model.UserStats, error) {
	annotations, datasets, err := rds.AggregateUserStats(s.DB, annotatorId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	return &model.UserStats{
		TotalAnnotations: annotations,
		DatasetsWorkedOn: datasets,
	}, nil
}

// プラットフォーム全体の件数を集計する。
func (s *ProgressService) PlatformStats() (*model.PlatformStats, error) {
	stats := &model.PlatformStats{}

	if n, e := rds.CountDatasets(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		stats.TotalDatasets = n
	}

	if n, e := rds.CountRecords(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		stats.TotalRecords = n
	}

	if n, e := rds.CountAnnotators(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		stats.TotalUsers = n
	}

	if n, e := rds.CountAnnotations(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		stats.TotalAnnotations = n
	}

	return stats, nil
}

// 直近のアノテーション活動を新しい順に取得する。
func (s *ProgressService) RecentActivity(limit int) ([]*model.ActivityEntry, error) {
	if r, e := rds.ListRecentAnnotations(s.DB, limit); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return r, nil
	}
}

// ユーザーの全アノテーションをレコード・データセット情報付きで新しい順に取得する。
// 状態が指定された場合、その状態のアノテーションに絞り込む。
func (s *ProgressService) UserActivities(annotatorId int, status *C.AnnotationStatus) ([]*model.ActivityEntry, error) {
	if status != nil && !C.IsValidStatus(*status) {
		return nil, C.INVALID_STATUS(string(*status))
	}

	if r, e := rds.ListAnnotationsByUser(s.DB, annotatorId, status); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return r, nil
	}
}
