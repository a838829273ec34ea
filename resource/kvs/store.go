package kvs

import (
	"context"

	"github.com/patrickmn/go-cache"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
)

// 論理コレクション名。フラットなKVSデプロイでは三つのJSONドキュメントのみを持つ。
const (
	UsersKey       string = "users"
	DatasetsKey           = "datasets"
	AnnotationsKey        = "annotations"
)

// MemoryStore プロセス内のBLOBストア。テストと単体デプロイで用いる。
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if v, be := s.cache.Get(key); !be {
		return nil, nil
	} else {
		return v.([]byte), nil
	}
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

var _ lib.KVSClient = (*MemoryStore)(nil)
