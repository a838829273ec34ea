package rds

import (
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

// アノテーションの監査ログを古い順に取得する。
func ListAnnotationHistory(
	db model.QueryExecutor,
	annotationId int,
) ([]*model.AnnotationHistory, error) {
	records := []*model.AnnotationHistory{}

	query := `SELECT * FROM annotation_history WHERE annotation_id = $1 ORDER BY created_at ASC`

	if _, e := db.Select(&records, query, annotationId); e != nil {
		return nil, e
	}

	return records, nil
}

// データセット内の全アノテーションの監査ログを削除する。
func DeleteHistoryInDataset(
	db model.QueryExecutor,
	datasetId int,
) error {
	query := `DELETE FROM annotation_history WHERE annotation_id IN (SELECT id FROM annotation WHERE dataset_id = $1)`

	_, err := db.Exec(query, datasetId)
	return err
}
