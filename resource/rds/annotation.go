package rds

import (
	"database/sql"
	"fmt"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

func InquireAnnotation(
	db model.QueryExecutor,
	id int,
) (*model.Annotation, error) {
	if r, e := db.Get(model.Annotation{}, id); e != nil {
		return nil, e
	} else if r == nil {
		return nil, nil
	} else {
		return r.(*model.Annotation), nil
	}
}

// (アノテーター, データセット, レコード)の複合キーでライブなアノテーションを取得する。
// 三段階のnullチェックの代わりに、この一回の検索で不在を表現する。
func FetchAnnotationByKey(
	db model.QueryExecutor,
	annotatorId int,
	datasetId int,
	recordId int,
) (*model.Annotation, error) {
	result := model.Annotation{}

	query := `SELECT * FROM annotation WHERE annotator_id = $1 AND dataset_id = $2 AND record_id = $3`

	if e := db.SelectOne(&result, query, annotatorId, datasetId, recordId); e != nil {
		if e == sql.ErrNoRows {
			return nil, nil
		} else {
			return nil, e
		}
	}

	return &result, nil
}

// あるレコードに対する全アノテーターのライブなアノテーションを取得する。
func ListAnnotationsForRecord(
	db model.QueryExecutor,
	datasetId int,
	recordId int,
) ([]*model.Annotation, error) {
	records := []*model.Annotation{}

	query := `SELECT * FROM annotation WHERE dataset_id = $1 AND record_id = $2`

	if _, e := db.Select(&records, query, datasetId, recordId); e != nil {
		return nil, e
	}

	return records, nil
}

// あるユーザーのデータセット内のアノテーションを保存時刻の新しい順に取得する。
func ListAnnotationsByUserInDataset(
	db model.QueryExecutor,
	annotatorId int,
	datasetId int,
) ([]*model.Annotation, error) {
	records := []*model.Annotation{}

	query := `SELECT * FROM annotation WHERE annotator_id = $1 AND dataset_id = $2 ORDER BY modified_at DESC`

	if _, e := db.Select(&records, query, annotatorId, datasetId); e != nil {
		return nil, e
	}

	return records, nil
}

// あるユーザーのデータセット内で最後に保存されたアノテーションを取得する。
// 挿入順ではなく保存タイムスタンプ順で判定する。
func FetchLatestAnnotation(
	db model.QueryExecutor,
	annotatorId int,
	datasetId int,
) (*model.Annotation, error) {
	result := model.Annotation{}

	query := `SELECT * FROM annotation WHERE annotator_id = $1 AND dataset_id = $2 ORDER BY modified_at DESC LIMIT 1`

	if e := db.SelectOne(&result, query, annotatorId, datasetId); e != nil {
		if e == sql.ErrNoRows {
			return nil, nil
		} else {
			return nil, e
		}
	}

	return &result, nil
}

// ユーザーの全アノテーションをレコード・データセット情報付きで新しい順に取得する。
// 状態が指定された場合、その状態のアノテーションに絞り込む。
func ListAnnotationsByUser(
	db model.QueryExecutor,
	annotatorId int,
	status *C.AnnotationStatus,
) ([]*model.ActivityEntry, error) {
	holder := &incrementalPlaceholder{}

	conditions := andQuery().add(holder.Generate("n.annotator_id ="), annotatorId)

	if status != nil {
		conditions = conditions.add(holder.Generate("n.status ="), string(*status))
	}

	return listActivities(db, conditions, 0)
}

// 直近のアノテーション活動を新しい順に取得する。
func ListRecentAnnotations(
	db model.QueryExecutor,
	limit int,
) ([]*model.ActivityEntry, error) {
	return listActivities(db, andQuery(), limit)
}

func listActivities(
	db model.QueryExecutor,
	conditions *querying,
	limit int,
) ([]*model.ActivityEntry, error) {
	clause, params := conditions.where()

	limitClause := ""
	if limit > 0 {
		limitClause = fmt.Sprintf("LIMIT %d", limit)
	}

	query := fmt.Sprintf(
		`SELECT
			%s,
			a.username AS x_username,
			r.patient_id AS x_patient_id,
			d.name AS x_dataset_name
		FROM
			annotation AS n
			INNER JOIN annotator AS a ON n.annotator_id = a.id
			INNER JOIN ecg_record AS r ON n.record_id = r.id
			INNER JOIN dataset AS d ON n.dataset_id = d.id
		%s
		ORDER BY
			n.modified_at DESC
		%s`,
		prefixColumns(model.Annotation{}, "n", "n"),
		clause,
		limitClause,
	)

	records := []*model.ActivityEntry{}

	if rows, e := db.Query(query, params.values...); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			entry := model.ActivityEntry{
				Annotation: &model.Annotation{},
			}

			scanRows(db, rows, entry.Annotation, "n")

			var context struct {
				Username    string `db:"username"`
				PatientId   string `db:"patient_id"`
				DatasetName string `db:"dataset_name"`
			}
			scanRows(db, rows, &context, "x")

			entry.AnnotatorName = context.Username
			entry.PatientId = context.PatientId
			entry.DatasetName = context.DatasetName

			records = append(records, &entry)
		})
	}

	return records, nil
}

// データセット内の全アノテーションを削除する。
func DeleteAnnotationsInDataset(
	db model.QueryExecutor,
	datasetId int,
) error {
	_, err := db.Exec(`DELETE FROM annotation WHERE dataset_id = $1`, datasetId)
	return err
}

func CountAnnotations(
	db model.QueryExecutor,
) (int, error) {
	if n, e := db.SelectInt(`SELECT COUNT(*) FROM annotation`); e != nil {
		return 0, e
	} else {
		return int(n), nil
	}
}
