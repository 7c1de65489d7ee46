package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckHealth(t *testing.T) {
	up := miniredis.RunT(t)
	down := miniredis.RunT(t)
	upClient := redis.NewClient(&redis.Options{Addr: up.Addr()})
	downClient := redis.NewClient(&redis.Options{Addr: down.Addr()})
	t.Cleanup(func() {
		_ = upClient.Close()
		_ = downClient.Close()
	})
	down.Close()

	status := CheckHealth(context.Background(), []*redis.Client{upClient, downClient}, pingerFunc(func(context.Context) error { return nil }))

	assert.True(t, status.Store)
	assert.Equal(t, []bool{true, false}, status.Redis)
	assert.False(t, status.Healthy())
	assert.Equal(t, status, GetHealthStatus())
}

func TestCheckHealthStoreDown(t *testing.T) {
	status := CheckHealth(context.Background(), nil, pingerFunc(func(context.Context) error { return errors.New("unreachable") }))
	assert.False(t, status.Store)
	assert.False(t, status.Healthy())
}

func TestCheckHealthAllUp(t *testing.T) {
	status := CheckHealth(context.Background(), nil, nil)
	assert.True(t, status.Healthy())
}
