package services

import (
	"context"
	"errors"
	"io/fs"

	"vitalimes-backend/libs"

	"go.uber.org/zap"
)

// OrphanReaper deletes files no row references any more. It never fails:
// a missing file counts as deleted and other errors are logged.
type OrphanReaper struct {
	media libs.MediaStore
	log   *zap.Logger
}

func NewOrphanReaper(media libs.MediaStore, log *zap.Logger) *OrphanReaper {
	return &OrphanReaper{media: media, log: log}
}

func (r *OrphanReaper) Remove(ctx context.Context, name *string) {
	if name == nil || *name == "" {
		return
	}

	err := r.media.Delete(ctx, *name)
	switch {
	case err == nil:
		r.log.Debug("orphan removed", zap.String("name", *name))
	case errors.Is(err, libs.ErrMediaNotFound), errors.Is(err, fs.ErrNotExist):
		r.log.Debug("orphan already gone", zap.String("name", *name))
	default:
		r.log.Warn("failed to remove orphan file", zap.String("name", *name), zap.Error(err))
	}
}

func (r *OrphanReaper) RemoveAll(ctx context.Context, names []string) {
	for i := range names {
		r.Remove(ctx, &names[i])
	}
}
