package storage

import (
	"context"
	"fmt"

	"volnasup.ru/shop/internal/config"
)

// New builds the configured driver. Local disk is the default so a dev
// setup needs no S3 credentials.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.LocalDir, cfg.LocalURLBase), nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBase == "" {
			return nil, fmt.Errorf("s3 storage needs S3_REGION, S3_BUCKET and S3_PUBLIC_BASE_URL")
		}
		return NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBase,
		})

	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
