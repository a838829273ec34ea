package rds

import (
	"database/sql"
	"time"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

// ユーザー名からアノテーターを取得する。存在しない場合はnilを返す。
func FetchAnnotatorByUsername(
	db model.QueryExecutor,
	username string,
) (*model.Annotator, error) {
	result := model.Annotator{}

	if e := db.SelectOne(&result, `SELECT * FROM annotator WHERE username = $1`, username); e != nil {
		if e == sql.ErrNoRows {
			return nil, nil
		} else {
			return nil, e
		}
	}

	return &result, nil
}

func InquireAnnotator(
	db model.QueryExecutor,
	id int,
) (*model.Annotator, error) {
	if r, e := db.Get(model.Annotator{}, id); e != nil {
		return nil, e
	} else if r == nil {
		return nil, nil
	} else {
		return r.(*model.Annotator), nil
	}
}

// 全アノテーターを登録順に取得する。
func ListAnnotators(
	db model.QueryExecutor,
) ([]*model.Annotator, error) {
	records := []*model.Annotator{}

	if _, e := db.Select(&records, `SELECT * FROM annotator ORDER BY id ASC`); e != nil {
		return nil, e
	}

	return records, nil
}

// 複数のアノテーターをIDで取得する。レビュー表示でのユーザー名解決に用いる。
func ListAnnotatorsByIds(
	db model.QueryExecutor,
	ids []int,
) (map[int]*model.Annotator, error) {
	results := map[int]*model.Annotator{}

	if len(ids) == 0 {
		return results, nil
	}

	records := []*model.Annotator{}

	if _, e := db.Select(&records, `SELECT * FROM annotator WHERE id IN (:ids)`, map[string]interface{}{
		"ids": ids,
	}); e != nil {
		return nil, e
	}

	for _, r := range records {
		results[r.Id] = r
	}

	return results, nil
}

func UpdateAnnotatorTokenVersion(
	db model.QueryExecutor,
	id int,
	version string,
	now time.Time,
) error {
	_, err := db.Exec(`UPDATE annotator SET token_version = $1, modified_at = $2 WHERE id = $3`, version, now, id)
	return err
}

// 登録済みユーザー数を数える。
func CountAnnotators(
	db model.QueryExecutor,
) (int, error) {
	if n, e := db.SelectInt(`SELECT COUNT(*) FROM annotator`); e != nil {
		return 0, e
	} else {
		return int(n), nil
	}
}

// ユーザー名またはメールアドレスが既に使われているか調べる。
func ExistsAnnotator(
	db model.QueryExecutor,
	username string,
	email string,
) (bool, error) {
	query := `SELECT * FROM annotator WHERE username = $1 OR email = $2`

	if rows, e := db.Query(query, username, email); e != nil {
		return false, e
	} else {
		defer rows.Close()
		return rows.Next(), nil
	}
}
