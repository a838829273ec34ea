package kvs

import (
	"context"
	"encoding/json"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

// UsersDocument ユーザー名をキーとするユーザードキュメント。
type UsersDocument map[string]*model.Annotator

// DatasetRecords データセットのメタ情報と取り込み順のレコード列。
type DatasetRecords struct {
	Dataset *model.Dataset  `json:"dataset"`
	Records []*model.Record `json:"records"`
}

// DatasetsDocument データセットUUIDをキーとするデータセットドキュメント。
type DatasetsDocument map[string]*DatasetRecords

// AnnotationsDocument ユーザー名 -> データセットUUID -> レコードID の三段マップ。
// ライブなアノテーションは各キーに対して高々一つ。
type AnnotationsDocument map[string]map[string]map[string]*model.Annotation

func loadDocument(ctx context.Context, store lib.KVSClient, key string, value interface{}) error {
	blob, err := store.Get(ctx, key)

	if err != nil {
		return err
	}

	if blob == nil {
		return nil
	}

	return json.Unmarshal(blob, value)
}

func saveDocument(ctx context.Context, store lib.KVSClient, key string, value interface{}) error {
	blob, err := json.Marshal(value)

	if err != nil {
		return err
	}

	return store.Set(ctx, key, blob)
}
