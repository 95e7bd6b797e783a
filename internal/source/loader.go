package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vbind/internal/errors"
)

// DefaultMaxSize bounds how much a single source may hold.
const DefaultMaxSize = 16 << 20

// ObjectGetter is the part of *s3.Client the loader uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader reads sources from files, stdin and object storage.
type Loader struct {
	s3      ObjectGetter
	stdin   io.Reader
	maxSize int64
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithS3 enables s3:// locations.
func WithS3(client ObjectGetter) Option {
	return func(l *Loader) {
		l.s3 = client
	}
}

// WithStdin sets the reader used for "-". Default: os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

// WithMaxSize sets the size limit in bytes (0 = no limit).
func WithMaxSize(n int64) Option {
	return func(l *Loader) {
		l.maxSize = n
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		stdin:   os.Stdin,
		maxSize: DefaultMaxSize,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Read returns the content at location. Failures are coded E040 errors.
func (l *Loader) Read(ctx context.Context, location string) ([]byte, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, errors.New("E040").WithExpr(location).Wrap(err)
	}
	data, err := l.ReadLocation(ctx, loc)
	if err != nil {
		return nil, errors.FromError(err, "E040").WithExpr(location)
	}
	l.logger.Debug("source read", "location", location, "scheme", loc.Scheme.String(), "bytes", len(data))
	return data, nil
}

// ReadLocation reads a parsed location.
func (l *Loader) ReadLocation(ctx context.Context, loc Location) ([]byte, error) {
	switch loc.Scheme {
	case SchemeStdin:
		return l.readAll(l.stdin)
	case SchemeS3:
		return l.readObject(ctx, loc)
	default:
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return l.readAll(f)
	}
}

func (l *Loader) readObject(ctx context.Context, loc Location) ([]byte, error) {
	if l.s3 == nil {
		return nil, errors.New("E040").
			WithDetail("s3:// locations need object storage credentials").
			WithSuggestion("Set AWS_REGION, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}
	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", loc, err)
	}
	defer out.Body.Close()
	return l.readAll(out.Body)
}

// readAll reads r up to the size limit.
func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("no input")
	}
	if l.maxSize <= 0 {
		return io.ReadAll(r)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, err
	}
	if n > l.maxSize {
		return nil, fmt.Errorf("source exceeds %d bytes", l.maxSize)
	}
	return buf.Bytes(), nil
}
