package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/pmwire/format"
	"github.com/arloliu/pmwire/internal/options"
	"github.com/arloliu/pmwire/section"
)

type config struct {
	format        format.RecordFormat
	compression   format.CompressionType
	maxRecordSize int
	logger        logrus.FieldLogger
}

// Option configures a Writer or a Reader.
type Option = options.Option[*config]

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		format:        format.FormatArchiveV3,
		compression:   format.CompressionZstd,
		maxRecordSize: section.MaxRecordLen,
		logger:        discardLogger(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// WithRecordFormat sets the record format a Writer encodes with. Only the
// archive formats are accepted; the default is FormatArchiveV3. Readers take
// the format from the volume header and ignore this option.
func WithRecordFormat(rf format.RecordFormat) Option {
	return options.New(func(c *config) error {
		if !rf.IsValid() || rf.IsWire() {
			return fmt.Errorf("record format %s is not an archive format", rf)
		}
		c.format = rf

		return nil
	})
}

// WithCompression sets the payload compression of written volumes. The
// default is Zstd.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if !ct.IsValid() {
			return fmt.Errorf("invalid volume compression: %s", ct)
		}
		c.compression = ct

		return nil
	})
}

// WithMaxRecordSize makes a Reader reject records declaring more than n bytes.
func WithMaxRecordSize(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("max record size must be positive, got %d", n)
		}
		c.maxRecordSize = n

		return nil
	})
}

// WithLogger sets the logger receiving debug diagnostics. Nothing is logged by default.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.New(func(c *config) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = logger

		return nil
	})
}
