package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectRedisUnreachable(t *testing.T) {
	// Port 1 refuses immediately; a failed connect must leave the client nil
	// so callers degrade to running without attempt limiting.
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")

	client := ConnectRedis()
	assert.Nil(t, client)
	assert.Nil(t, GetRedisClient())
}
