package cloudwriter

import (
	"fmt"

	"github.com/campuskitchen/surplusmart/internal/models"
)

// CloudWriter buffers writes for a single object and uploads on Close.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}

// NewFactory builds the factory for the configured provider. Only S3 is
// wired today.
func NewFactory(cfg models.CloudStorageConfig) (CloudWriterFactory, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3WriterFactory(cfg.Region)
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.Provider)
	}
}
