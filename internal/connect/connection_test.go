package connect

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/joshua-takyi/spotlight/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb+srv://u:pw@c", MongoURI("mongodb+srv://u:<password>@c", "pw"))
	assert.Equal(t, "mongodb://localhost", MongoURI("mongodb://localhost", "pw"))
}

func TestOptionalServices(t *testing.T) {
	cfg := &config.Config{}

	supa, err := InitSupabase(cfg)
	require.NoError(t, err)
	assert.Nil(t, supa)

	rdb, err := RedisConnect(cfg)
	require.NoError(t, err)
	assert.Nil(t, rdb)

	cld, err := CloudinaryCredentials(cfg)
	require.NoError(t, err)
	assert.Nil(t, cld)
}

func TestRedisConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := RedisConnect(&config.Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	assert.NoError(t, RedisDisconnect())
	assert.Nil(t, RedisClient)

	_, err = RedisConnect(&config.Config{RedisURL: "not a url"})
	assert.Error(t, err)
}

func TestCloudinaryCredentials(t *testing.T) {
	cld, err := CloudinaryCredentials(&config.Config{
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, cld)
}
