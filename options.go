package vecgraph

import (
	"log/slog"

	"github.com/vecgraph/vecgraph/codec"
	"github.com/vecgraph/vecgraph/snapshot"
)

type options struct {
	codec       codec.Codec
	compression snapshot.CompressionType
	logger      *Logger
}

// Option configures Graph constructor behavior.
type Option func(*options)

// WithCodec configures the codec used for snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the compression applied to snapshot payloads.
func WithCompression(c snapshot.CompressionType) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vecgraph.NewJSONLogger(slog.LevelInfo)
//	g := vecgraph.New(16, vecgraph.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:       codec.Default,
		compression: snapshot.CompressionNone,
		logger:      NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
