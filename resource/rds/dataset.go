package rds

import (
	"database/sql"
	"fmt"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

func FetchDatasetByUuid(
	db model.QueryExecutor,
	uuid string,
) (*model.Dataset, error) {
	result := model.Dataset{}

	if e := db.SelectOne(&result, `SELECT * FROM dataset WHERE uuid = $1`, uuid); e != nil {
		if e == sql.ErrNoRows {
			return nil, nil
		} else {
			return nil, e
		}
	}

	return &result, nil
}

// 有効なデータセットを新しい順に、アップローダーとレコード数付きで取得する。
// 波形データは含まない。
func ListDatasets(
	db model.QueryExecutor,
) ([]*model.DatasetEntity, error) {
	query := fmt.Sprintf(
		`SELECT
			%s, %s,
			(SELECT COUNT(*) FROM ecg_record WHERE dataset_id = d.id) AS d_record_count
		FROM
			dataset AS d
			LEFT JOIN annotator AS a ON d.uploaded_by = a.id
		WHERE
			d.is_active = TRUE
		ORDER BY
			d.created_at DESC`,
		prefixColumns(model.Dataset{}, "d", "d"),
		prefixColumns(model.Annotator{}, "a", "a"),
	)

	records := []*model.DatasetEntity{}

	if rows, e := db.Query(query); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			entity := model.DatasetEntity{
				Dataset:  &model.Dataset{},
				Uploader: &model.Annotator{},
			}

			scanRows(db, rows, entity.Dataset, "d")
			scanRows(db, rows, entity.Uploader, "a")

			var count struct {
				RecordCount int `db:"record_count"`
			}
			scanRows(db, rows, &count, "d")
			entity.RecordCount = count.RecordCount

			records = append(records, &entity)
		})
	}

	return records, nil
}

// データセット内のレコード数を数える。
func CountRecordsInDataset(
	db model.QueryExecutor,
	datasetId int,
) (int, error) {
	if n, e := db.SelectInt(`SELECT COUNT(*) FROM ecg_record WHERE dataset_id = $1`, datasetId); e != nil {
		return 0, e
	} else {
		return int(n), nil
	}
}

// データセットを削除する。レコードとアノテーションは先に削除されている必要がある。
func DeleteDataset(
	db model.QueryExecutor,
	datasetId int,
) error {
	_, err := db.Exec(`DELETE FROM dataset WHERE id = $1`, datasetId)
	return err
}

func CountDatasets(
	db model.QueryExecutor,
) (int, error) {
	if n, e := db.SelectInt(`SELECT COUNT(*) FROM dataset`); e != nil {
		return 0, e
	} else {
		return int(n), nil
	}
}
