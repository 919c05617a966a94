package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client define o contrato de cache usado pelos repositórios e pelo rate limiter.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	GetInt(ctx context.Context, key string) (int, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// ErrCacheMiss é retornado quando a chave não existe no cache.
var ErrCacheMiss = redis.Nil

// RedisClient é a implementação de Client sobre Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient conecta ao Redis e valida a conexão com PING.
func NewRedisClient(addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: ping %s: %w", addr, err)
	}

	return &RedisClient{rdb: rdb}, nil
}

// Get recupera o valor de uma chave. Chave ausente devolve ErrCacheMiss.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set grava um valor com expiração.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete remove uma chave; remover chave inexistente não é erro.
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// GetInt lê uma chave numérica (contadores do rate limiter).
func (c *RedisClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, ErrCacheMiss
	}
	return val, err
}

// Incr incrementa um contador preservando o TTL existente.
func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// Close encerra o pool de conexões.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
