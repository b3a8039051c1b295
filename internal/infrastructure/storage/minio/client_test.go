package minio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asad/ReactionDecoder-sub002/internal/config"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

// fakeS3 serves path-style GET /bucket/key from objects and an empty bucket
// listing at /.
func fakeS3(t *testing.T, objects map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><ListAllMyBucketsResult><Buckets></Buckets></ListAllMyBucketsResult>`))
			return
		}
		body, ok := objects[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>%s</Key><RequestId>1</RequestId></Error>`, r.URL.Path)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.Header().Set("Last-Modified", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat))
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	c, err := NewClient(&config.MinIOConfig{
		Endpoint:        u.Host,
		AccessKeyID:     "test",
		SecretAccessKey: "testsecret",
		Timeout:         5 * time.Second,
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestParseRef(t *testing.T) {
	cases := []struct {
		ref    string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://graphs/benzene.json", "graphs", "benzene.json", true},
		{"s3://graphs/sets/a/b.json", "graphs", "sets/a/b.json", true},
		{"s3://graphs/", "", "", false},
		{"s3:///key", "", "", false},
		{"s3://graphs", "", "", false},
		{"/tmp/benzene.json", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.ref, func(t *testing.T) {
			b, k, ok := ParseRef(tc.ref)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.bucket, b)
			assert.Equal(t, tc.key, k)
		})
	}
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(&config.MinIOConfig{}, logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	_, err = NewClient(nil, logging.NewNopLogger())
	require.Error(t, err)
}

func TestClient_Fetch(t *testing.T) {
	srv := fakeS3(t, map[string]string{"graphs/water.json": `{"id":"water"}`})
	c := newTestClient(t, srv)

	data, err := c.Fetch(context.Background(), "s3://graphs/water.json", 1024)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"water"}`, string(data))
}

func TestClient_Fetch_NotFound(t *testing.T) {
	srv := fakeS3(t, nil)
	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background(), "s3://graphs/missing.json", 0)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsCode(err, errors.CodeMoleculeNotFound))
}

func TestClient_Fetch_TooLarge(t *testing.T) {
	srv := fakeS3(t, map[string]string{"graphs/big.json": strings.Repeat(" ", 64) + "{}"})
	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background(), "s3://graphs/big.json", 16)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidGraph))
}

func TestClient_Fetch_BadRef(t *testing.T) {
	srv := fakeS3(t, nil)
	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background(), "graphs/water.json", 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestClient_Ping(t *testing.T) {
	srv := fakeS3(t, nil)
	c := newTestClient(t, srv)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestClient_Closed(t *testing.T) {
	srv := fakeS3(t, map[string]string{"graphs/water.json": `{}`})
	c := newTestClient(t, srv)
	require.NoError(t, c.Close())

	_, err := c.Fetch(context.Background(), "s3://graphs/water.json", 0)
	assert.ErrorIs(t, err, ErrClientClosed)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrClientClosed)
}
