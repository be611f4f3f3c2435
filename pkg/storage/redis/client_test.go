package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"github.com/gmit-kupang/sensus-jemaat/config"
)

func TestNewRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&config.Config{RedisAddr: mr.Addr()})
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))

	mr.Close()
	assert.Error(t, Ping(context.Background(), client))
}
