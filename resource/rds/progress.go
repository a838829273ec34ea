package rds

import (
	"database/sql"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

// あるユーザーがデータセット内で判定済みの、相異なるレコード数を数える。
func CountAnnotatedByUser(
	db model.QueryExecutor,
	annotatorId int,
	datasetId int,
) (int, error) {
	query := `SELECT COUNT(DISTINCT record_id) FROM annotation WHERE annotator_id = $1 AND dataset_id = $2`

	if n, e := db.SelectInt(query, annotatorId, datasetId); e != nil {
		return 0, e
	} else {
		return int(n), nil
	}
}

// データセットのカバレッジをDB側で集計する。
// annotated_recordsは誰か一人でも判定したレコードを一件として数える。
func AggregateDatasetCoverage(
	db model.QueryExecutor,
	datasetId int,
) (annotatedRecords int, distinctAnnotators int, err error) {
	query := `SELECT
			COUNT(DISTINCT record_id) AS annotated_records,
			COUNT(DISTINCT annotator_id) AS distinct_annotators
		FROM
			annotation
		WHERE
			dataset_id = $1`

	var result struct {
		AnnotatedRecords   int `db:"annotated_records"`
		DistinctAnnotators int `db:"distinct_annotators"`
	}

	if e := db.SelectOne(&result, query, datasetId); e != nil {
		if e == sql.ErrNoRows {
			return 0, 0, nil
		}
		return 0, 0, e
	}

	return result.AnnotatedRecords, result.DistinctAnnotators, nil
}

// ユーザーの横断統計をDB側で集計する。
func AggregateUserStats(
	db model.QueryExecutor,
	annotatorId int,
) (totalAnnotations int, datasetsWorkedOn int, err error) {
	query := `SELECT
			COUNT(*) AS total_annotations,
			COUNT(DISTINCT dataset_id) AS datasets_worked_on
		FROM
			annotation
		WHERE
			annotator_id = $1`

	var result struct {
		TotalAnnotations int `db:"total_annotations"`
		DatasetsWorkedOn int `db:"datasets_worked_on"`
	}

	if e := db.SelectOne(&result, query, annotatorId); e != nil {
		if e == sql.ErrNoRows {
			return 0, 0, nil
		}
		return 0, 0, e
	}

	return result.TotalAnnotations, result.DatasetsWorkedOn, nil
}
