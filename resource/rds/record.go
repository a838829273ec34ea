package rds

import (
	"database/sql"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

// データセット内のレコードを取り込み順に取得する。
func ListRecordsInDataset(
	db model.QueryExecutor,
	datasetId int,
) ([]*model.Record, error) {
	records := []*model.Record{}

	if _, e := db.Select(&records, `SELECT * FROM ecg_record WHERE dataset_id = $1 ORDER BY record_number ASC`, datasetId); e != nil {
		return nil, e
	}

	return records, nil
}

// データセット内のレコードIDを取り込み順に取得する。再開位置の算出に用いる。
func ListRecordIdsInDataset(
	db model.QueryExecutor,
	datasetId int,
) ([]int, error) {
	ids := []int{}

	if _, e := db.Select(&ids, `SELECT id FROM ecg_record WHERE dataset_id = $1 ORDER BY record_number ASC`, datasetId); e != nil {
		return nil, e
	}

	return ids, nil
}

// データセット内の指定レコードを取得する。属さない場合はnilを返す。
func FetchRecordInDataset(
	db model.QueryExecutor,
	datasetId int,
	recordId int,
) (*model.Record, error) {
	result := model.Record{}

	if e := db.SelectOne(&result, `SELECT * FROM ecg_record WHERE id = $1 AND dataset_id = $2`, recordId, datasetId); e != nil {
		if e == sql.ErrNoRows {
			return nil, nil
		} else {
			return nil, e
		}
	}

	return &result, nil
}

// データセット内の全レコードを削除する。
func DeleteRecordsInDataset(
	db model.QueryExecutor,
	datasetId int,
) error {
	_, err := db.Exec(`DELETE FROM ecg_record WHERE dataset_id = $1`, datasetId)
	return err
}

func CountRecords(
	db model.QueryExecutor,
) (int, error) {
	if n, e := db.SelectInt(`SELECT COUNT(*) FROM ecg_record`); e != nil {
		return 0, e
	} else {
		return int(n), nil
	}
}
