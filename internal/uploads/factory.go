package uploads

import (
	"context"
	"fmt"

	"github.com/srbeng/srb-site/config"
)

// Open selects the store named by UPLOAD_DRIVER.
func Open(ctx context.Context, cfg config.UploadConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.UploadInline:
		return InlineStore{}, nil
	case config.UploadFilesystem:
		return NewFSStore(cfg.FSRoot, cfg.PublicBase)
	case config.UploadS3:
		return NewS3Store(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Driver)
	}
}
