// Package graphstore implements molecule.Repository over local JSON graph
// documents and, when configured, objects in an S3-compatible store.
package graphstore

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/asad/ReactionDecoder-sub002/internal/config"
	"github.com/asad/ReactionDecoder-sub002/internal/domain/molecule"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

// objectScheme marks references served by the ObjectFetcher.
const objectScheme = "s3://"

// StdinRef reads the document from the configured stdin reader.
const StdinRef = "-"

// ObjectFetcher reads whole objects by reference.  *minio.Client satisfies it.
type ObjectFetcher interface {
	Fetch(ctx context.Context, ref string, limit int64) ([]byte, error)
}

// Repository loads molecule graphs by reference.
type Repository struct {
	objects  ObjectFetcher
	stdin    io.Reader
	maxBytes int64
	logger   logging.Logger
}

var _ molecule.Repository = (*Repository)(nil)

// Option configures a Repository.
type Option func(*Repository)

// WithObjectFetcher enables s3:// references.
func WithObjectFetcher(f ObjectFetcher) Option {
	return func(r *Repository) { r.objects = f }
}

// WithStdin enables the "-" reference.
func WithStdin(in io.Reader) Option {
	return func(r *Repository) { r.stdin = in }
}

// WithMaxDocumentBytes caps the size of one document.
func WithMaxDocumentBytes(n int64) Option {
	return func(r *Repository) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// NewRepository returns a file-backed repository.
func NewRepository(log logging.Logger, opts ...Option) *Repository {
	r := &Repository{
		maxBytes: config.DefaultMaxDocumentBytes,
		logger:   log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindByRef loads the single graph stored at ref.
func (r *Repository) FindByRef(ctx context.Context, ref string) (*molecule.Molecule, error) {
	mols, err := r.FindAllByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(mols) != 1 {
		return nil, errors.InvalidGraph("expected exactly one graph").
			WithDetail(fmt.Sprintf("ref=%s graphs=%d", ref, len(mols)))
	}
	return mols[0], nil
}

// FindAllByRef loads every graph stored at ref, in document order.
func (r *Repository) FindAllByRef(ctx context.Context, ref string) ([]*molecule.Molecule, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "graph load cancelled")
	}
	data, err := r.read(ctx, ref)
	if err != nil {
		return nil, err
	}
	dtos, err := DecodeDocument(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "failed to decode graph document").WithDetail(ref)
	}
	mols, err := BuildMolecules(sourceName(ref), dtos)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("graph document loaded", logging.String("ref", ref), logging.Int("graphs", len(mols)))
	return mols, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Sources
// ─────────────────────────────────────────────────────────────────────────────

func (r *Repository) read(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.TrimSpace(ref) == "":
		return nil, errors.InvalidParam("graph reference is empty")
	case ref == StdinRef:
		if r.stdin == nil {
			return nil, errors.InvalidParam("reading graphs from stdin is not enabled")
		}
		return r.readLimited(r.stdin, ref)
	case strings.HasPrefix(ref, objectScheme):
		if r.objects == nil {
			return nil, errors.InvalidParam("object storage is not configured").WithDetail(ref)
		}
		return r.objects.Fetch(ctx, ref, r.maxBytes)
	default:
		return r.readFile(ref)
	}
}

func (r *Repository) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.CodeMoleculeNotFound, "graph file not found").WithDetail(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to open graph file").WithDetail(path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to stat graph file").WithDetail(path)
	}
	if info.IsDir() {
		return nil, errors.InvalidParam("graph reference is a directory").WithDetail(path)
	}
	return r.readLimited(f, path)
}

func (r *Repository) readLimited(in io.Reader, ref string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(in, r.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to read graph document").WithDetail(ref)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, errors.InvalidGraph("graph document exceeds size limit").
			WithDetail(fmt.Sprintf("ref=%s limit=%d", ref, r.maxBytes))
	}
	return data, nil
}

func sourceName(ref string) string {
	if ref == StdinRef {
		return "stdin"
	}
	if i := strings.LastIndexAny(ref, `/\`); i >= 0 && i < len(ref)-1 {
		return ref[i+1:]
	}
	return ref
}

//Personal.AI order the ending
