// Package minio reads molecule graph documents from an S3-compatible object
// store.
package minio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/asad/ReactionDecoder-sub002/internal/config"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

// Scheme prefixes every object reference, e.g. s3://graphs/benzene.json.
const Scheme = "s3://"

var (
	// ErrObjectNotFound is returned when the bucket or key does not exist.
	ErrObjectNotFound = errors.New(errors.CodeMoleculeNotFound, "graph object not found")
	// ErrObjectTooLarge is returned when an object exceeds the read limit.
	ErrObjectTooLarge = errors.New(errors.ErrCodeInvalidGraph, "graph object exceeds size limit")
	// ErrClientClosed is returned by every call after Close.
	ErrClientClosed = errors.New(errors.ErrCodeServiceUnavailable, "object store client is closed")
)

// ─────────────────────────────────────────────────────────────────────────────
// API surface
// ─────────────────────────────────────────────────────────────────────────────

// ObjectAPI is the subset of *minio.Client used here.
type ObjectAPI interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// Client fetches graph documents by object reference.
type Client struct {
	api     ObjectAPI
	timeout time.Duration
	logger  logging.Logger
	mu      sync.RWMutex
	closed  bool
}

// NewClient builds a client for cfg.Endpoint.  No request is made until the
// first Fetch or Ping.
func NewClient(cfg *config.MinIOConfig, log logging.Logger) (*Client, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.InvalidParam("minio endpoint is required")
	}
	region := cfg.Region
	if region == "" {
		region = config.DefaultMinIORegion
	}

	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create minio client")
	}

	log.Info("object store configured",
		logging.String("endpoint", cfg.Endpoint),
		logging.Bool("ssl", cfg.UseSSL),
		logging.String("region", region))
	return newClient(api, cfg.Timeout, log), nil
}

func newClient(api ObjectAPI, timeout time.Duration, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = config.DefaultMinIOTimeout
	}
	return &Client{api: api, timeout: timeout, logger: log}
}

// ─────────────────────────────────────────────────────────────────────────────
// Operations
// ─────────────────────────────────────────────────────────────────────────────

// ParseRef splits s3://bucket/key.  ok is false for anything else.
func ParseRef(ref string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(ref, Scheme) {
		return "", "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(ref, Scheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Fetch reads the object at ref (s3://bucket/key).  Objects larger than
// limit bytes are rejected with ErrObjectTooLarge; limit <= 0 disables the
// check.
func (c *Client) Fetch(ctx context.Context, ref string, limit int64) ([]byte, error) {
	if c.isClosed() {
		return nil, ErrClientClosed
	}
	bucket, key, ok := ParseRef(ref)
	if !ok {
		return nil, errors.InvalidParam("object reference must look like s3://bucket/key").WithDetail(ref)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	obj, err := c.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, c.translate(err, ref)
	}
	defer obj.Close()

	var r io.Reader = obj
	if limit > 0 {
		r = io.LimitReader(obj, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, c.translate(err, ref)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, ErrObjectTooLarge.WithDetail(fmt.Sprintf("%s limit=%d", ref, limit))
	}

	c.logger.Debug("graph object fetched", logging.String("ref", ref), logging.Int("bytes", len(data)))
	return data, nil
}

// Ping lists buckets to confirm the endpoint answers.
func (c *Client) Ping(ctx context.Context) error {
	if c.isClosed() {
		return ErrClientClosed
	}
	if _, err := c.api.ListBuckets(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "object store unreachable")
	}
	return nil
}

// Close marks the client closed.  minio-go holds no resources to release.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Client) translate(err error, ref string) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrObjectNotFound.WithDetail(ref)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.ErrCodeTimeout, "graph object read timed out").WithDetail(ref)
	}
	c.logger.Warn("graph object fetch failed", logging.String("ref", ref), logging.Err(err))
	return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to read graph object").WithDetail(ref)
}

//Personal.AI order the ending
