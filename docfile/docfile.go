// Package docfile loads and saves node trees in files, coordinating
// processes through a lock on a ".lock" sidecar file.
package docfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/debug"
	"github.com/signadot/dataobject/encode"
	"github.com/signadot/dataobject/format"
	"github.com/signadot/dataobject/raw"
)

var ErrLocked = errors.New("document file locked")

const (
	DefaultTimeout = 3 * time.Second
	retryInterval  = 100 * time.Millisecond
)

// File is a document file. Its format defaults to the one implied by the
// file extension.
type File struct {
	path    string
	format  format.Format
	shape   raw.Kind
	builder *dataobject.Builder
	timeout time.Duration
	lock    *flock.Flock
}

type Option func(*File)

func WithFormat(f format.Format) Option {
	return func(df *File) { df.format = f }
}

// WithShape sets the shape documents are decoded as, raw.MapKind by
// default.
func WithShape(k raw.Kind) Option {
	return func(df *File) { df.shape = k }
}

func WithBuilder(b *dataobject.Builder) Option {
	return func(df *File) {
		if b != nil {
			df.builder = b
		}
	}
}

// WithTimeout bounds lock acquisition when the context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(df *File) { df.timeout = d }
}

func New(path string, opts ...Option) *File {
	df := &File{
		path:    path,
		format:  format.FromPath(path),
		shape:   raw.MapKind,
		builder: dataobject.NewBuilder(),
		timeout: DefaultTimeout,
		lock:    flock.New(path + ".lock"),
	}
	for _, opt := range opts {
		opt(df)
	}
	return df
}

func (df *File) Path() string {
	return df.path
}

func (df *File) Format() format.Format {
	return df.format
}

// Load reads and builds the document under a shared lock. A missing file
// is an error wrapping fs.ErrNotExist; an empty file is an empty node.
func (df *File) Load(ctx context.Context) (dataobject.Typed, error) {
	unlock, err := df.acquire(ctx, true)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return df.load()
}

// Save writes t under an exclusive lock, replacing the file atomically.
func (df *File) Save(ctx context.Context, t dataobject.Typed) error {
	unlock, err := df.acquire(ctx, false)
	if err != nil {
		return err
	}
	defer unlock()
	return df.save(t)
}

// Update loads the document, passes it to fn and saves the result, all
// under one exclusive lock. Nothing is written if fn fails.
func (df *File) Update(ctx context.Context, fn func(dataobject.Typed) (dataobject.Typed, error)) (dataobject.Typed, error) {
	unlock, err := df.acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer unlock()
	doc, err := df.load()
	if err != nil {
		return nil, err
	}
	res, err := fn(doc)
	if err != nil {
		return nil, err
	}
	if err := df.save(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (df *File) acquire(ctx context.Context, shared bool) (func(), error) {
	if _, ok := ctx.Deadline(); !ok && df.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, df.timeout)
		defer cancel()
	}
	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = df.lock.TryRLockContext(ctx, retryInterval)
	} else {
		locked, err = df.lock.TryLockContext(ctx, retryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLocked, df.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, df.path)
	}
	if debug.Lock() {
		debug.Logf("locked %s (shared=%t)\n", df.lock.Path(), shared)
	}
	return func() {
		_ = df.lock.Unlock()
		if debug.Lock() {
			debug.Logf("unlocked %s\n", df.lock.Path())
		}
	}, nil
}

func (df *File) load() (dataobject.Typed, error) {
	data, err := os.ReadFile(df.path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return df.builder.Build(raw.Value{Kind: df.shape})
	}
	rv, err := raw.Decode(data, df.format, df.shape)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", df.path, err)
	}
	if debug.Decode() {
		debug.Logf("decoded %s: %d keys\n", df.path, rv.Len())
	}
	res, err := df.builder.Build(rv)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", df.path, err)
	}
	return res, nil
}

func (df *File) save(t dataobject.Typed) error {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t, buf, encode.EncodeFormat(df.format)); err != nil {
		return fmt.Errorf("encoding %s: %w", df.path, err)
	}
	mode := os.FileMode(0644)
	if fi, err := os.Stat(df.path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(df.path), filepath.Base(df.path)+".tmp*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), df.path)
}

// Load is New(path, opts...).Load(ctx).
func Load(ctx context.Context, path string, opts ...Option) (dataobject.Typed, error) {
	return New(path, opts...).Load(ctx)
}

// Save is New(path, opts...).Save(ctx, t).
func Save(ctx context.Context, path string, t dataobject.Typed, opts ...Option) error {
	return New(path, opts...).Save(ctx, t)
}
