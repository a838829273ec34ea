package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KVSConfiguration フラットなKVSデプロイで用いるRedisの設定。
type KVSConfiguration struct {
	Addr     string
	Password string
	Database int
	Prefix   string
}

func (cfg *KVSConfiguration) String() string {
	return fmt.Sprintf(`[KVS]
Addr:     %v
Database: %v
Prefix:   %v`, cfg.Addr, cfg.Database, cfg.Prefix)
}

type configuredKVS struct {
	client *redis.Client
	prefix string
}

var defaultKVS *configuredKVS

func SetupKVS(cfg *KVSConfiguration) error {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.Database,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if e := client.Ping(ctx).Err(); e != nil {
		return e
	}

	defaultKVS = &configuredKVS{client, cfg.Prefix}

	return nil
}

// KVSClient 論理コレクション名をキーとするBLOBストア。
// valueが存在しないキーに対するGetは(nil, nil)を返す。
type KVSClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

func GetKVS() KVSClient {
	if defaultKVS == nil {
		return nil
	}
	return defaultKVS
}

func (c *configuredKVS) key(key string) string {
	if len(c.prefix) == 0 {
		return key
	}
	return c.prefix + ":" + key
}

func (c *configuredKVS) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.key(key)).Bytes()

	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return value, nil
}

func (c *configuredKVS) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.key(key), value, 0).Err()
}
