package redis

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

type CacheTestSuite struct {
	suite.Suite
	client *Client
	mock   redismock.ClientMock
	cache  Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.client = newClient(db, "", logging.NewNopLogger())
	s.cache = NewRedisCache(s.client, logging.NewNopLogger(),
		WithPrefix("test:"),
		WithDefaultTTL(time.Hour),
		WithJitter(0),
	)
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

type testStruct struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

const johnJSON = `{"name":"John","age":30}`

func (s *CacheTestSuite) TestGet_CacheHit() {
	s.mock.ExpectGet("test:key1").SetVal(johnJSON)

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)

	s.NoError(err)
	s.Equal(testStruct{Name: "John", Age: 30}, dest)
}

func (s *CacheTestSuite) TestGet_CacheMiss() {
	s.mock.ExpectGet("test:key1").RedisNil()

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)

	s.Equal(ErrCacheMiss, err)
	s.True(pkgerrors.IsNotFound(err))
}

func (s *CacheTestSuite) TestGet_NullCacheMarker() {
	s.mock.ExpectGet("test:key1").SetVal(nullMarker)

	var dest testStruct
	s.Equal(ErrCacheMiss, s.cache.Get(context.Background(), "key1", &dest))
}

func (s *CacheTestSuite) TestGet_BackendError() {
	s.mock.ExpectGet("test:key1").SetErr(stderrors.New("connection reset"))

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)

	s.Error(err)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
}

func (s *CacheTestSuite) TestGet_CorruptValue() {
	s.mock.ExpectGet("test:key1").SetVal("{not json")

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeSerialization))
}

func (s *CacheTestSuite) TestSet_UsesDefaultTTL() {
	s.mock.ExpectSet("test:key1", []byte(johnJSON), time.Hour).SetVal("OK")

	err := s.cache.Set(context.Background(), "key1", testStruct{Name: "John", Age: 30}, 0)
	s.NoError(err)
}

func (s *CacheTestSuite) TestSet_ExplicitTTL() {
	s.mock.ExpectSet("test:key1", []byte(johnJSON), time.Minute).SetVal("OK")

	err := s.cache.Set(context.Background(), "key1", testStruct{Name: "John", Age: 30}, time.Minute)
	s.NoError(err)
}

func (s *CacheTestSuite) TestSet_Unserialisable() {
	err := s.cache.Set(context.Background(), "key1", make(chan int), 0)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeSerialization))
}

func (s *CacheTestSuite) TestDelete_Success() {
	s.mock.ExpectDel("test:k1", "test:k2").SetVal(2)
	s.NoError(s.cache.Delete(context.Background(), "k1", "k2"))
}

func (s *CacheTestSuite) TestDelete_NoKeys() {
	s.NoError(s.cache.Delete(context.Background()))
}

func (s *CacheTestSuite) TestExists_True() {
	s.mock.ExpectExists("test:k1").SetVal(1)

	exists, err := s.cache.Exists(context.Background(), "k1")
	s.NoError(err)
	s.True(exists)
}

func (s *CacheTestSuite) TestGetOrSet_Hit() {
	s.mock.ExpectGet("test:key1").SetVal(johnJSON)

	called := false
	var dest testStruct
	err := s.cache.GetOrSet(context.Background(), "key1", &dest, time.Minute, func(context.Context) (interface{}, error) {
		called = true
		return nil, nil
	})

	s.NoError(err)
	s.False(called)
	s.Equal("John", dest.Name)
}

func (s *CacheTestSuite) TestGetOrSet_MissLoadsAndStores() {
	s.mock.ExpectGet("test:key1").RedisNil()
	s.mock.ExpectSet("test:key1", []byte(johnJSON), time.Minute).SetVal("OK")

	var dest testStruct
	err := s.cache.GetOrSet(context.Background(), "key1", &dest, time.Minute, func(context.Context) (interface{}, error) {
		return &testStruct{Name: "John", Age: 30}, nil
	})

	s.NoError(err)
	s.Equal(30, dest.Age)
}

func (s *CacheTestSuite) TestGetOrSet_NilValueStoresNullMarker() {
	s.mock.ExpectGet("test:key1").RedisNil()
	s.mock.ExpectSet("test:key1", nullMarker, 30*time.Second).SetVal("OK")

	var dest testStruct
	err := s.cache.GetOrSet(context.Background(), "key1", &dest, time.Minute, func(context.Context) (interface{}, error) {
		return nil, nil
	})
	s.Equal(ErrCacheMiss, err)
}

func (s *CacheTestSuite) TestGetOrSet_LoaderError() {
	s.mock.ExpectGet("test:key1").RedisNil()
	boom := stderrors.New("boom")

	var dest testStruct
	err := s.cache.GetOrSet(context.Background(), "key1", &dest, time.Minute, func(context.Context) (interface{}, error) {
		return nil, boom
	})
	s.ErrorIs(err, boom)
}

func (s *CacheTestSuite) TestGetOrLoad_ReportsSource() {
	s.mock.ExpectGet("test:key1").SetVal(johnJSON)
	var dest testStruct
	loaded, err := s.cache.GetOrLoad(context.Background(), "key1", &dest, time.Minute, func(context.Context) (interface{}, error) {
		return nil, nil
	})
	s.NoError(err)
	s.False(loaded, "read back from redis")

	s.mock.ExpectGet("test:key2").RedisNil()
	s.mock.ExpectSet("test:key2", []byte(johnJSON), time.Minute).SetVal("OK")
	loaded, err = s.cache.GetOrLoad(context.Background(), "key2", &dest, time.Minute, func(context.Context) (interface{}, error) {
		return &testStruct{Name: "John", Age: 30}, nil
	})
	s.NoError(err)
	s.True(loaded)

	s.mock.ExpectGet("test:key3").SetErr(stderrors.New("dial tcp: refused"))
	loaded, err = s.cache.GetOrLoad(context.Background(), "key3", &dest, time.Minute, func(context.Context) (interface{}, error) {
		return &testStruct{}, nil
	})
	s.Error(err)
	s.False(loaded, "the loader never ran")
}

func (s *CacheTestSuite) TestDeleteByPrefix() {
	s.mock.ExpectScan(0, "test:match:*", 100).SetVal([]string{"test:match:a", "test:match:b"}, 7)
	s.mock.ExpectDel("test:match:a", "test:match:b").SetVal(2)
	s.mock.ExpectScan(7, "test:match:*", 100).SetVal([]string{"test:match:c"}, 0)
	s.mock.ExpectDel("test:match:c").SetVal(1)

	n, err := s.cache.DeleteByPrefix(context.Background(), "match:")
	s.NoError(err)
	s.Equal(int64(3), n)
}

func (s *CacheTestSuite) TestClosedClient() {
	s.NoError(s.client.Close())

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)
	s.ErrorIs(err, ErrClientClosed)
	s.Equal(ErrClientClosed, s.cache.Ping(context.Background()))
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func TestJitterTTL_StaysWithinBounds(t *testing.T) {
	c := &redisCache{jitter: 0.1}
	for i := 0; i < 100; i++ {
		got := c.jitterTTL(time.Hour)
		assert.GreaterOrEqual(t, got, 54*time.Minute)
		assert.LessOrEqual(t, got, 66*time.Minute)
	}
	assert.Zero(t, c.jitterTTL(0))
}

//Personal.AI order the ending
