package services

import (
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"

	"vitalimes-backend/libs"
	"vitalimes-backend/models"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// UploadConfig names the form fields the catalog reads uploads and removal
// directives from.
type UploadConfig struct {
	ImageFields  [models.ImageSlotCount]string
	VideoField   string
	RemovedField string
	// MaxFileSize caps a single upload in bytes; 0 means unlimited.
	MaxFileSize int64
}

func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		ImageFields:  models.SlotLabels,
		VideoField:   models.VideoLabel,
		RemovedField: "removedImages",
	}
}

func (c UploadConfig) slotIndex(label string) (int, bool) {
	for i, f := range c.ImageFields {
		if f == label {
			return i, true
		}
	}
	return 0, false
}

type UploadIntake struct {
	media libs.MediaStore
	cfg   UploadConfig
	log   *zap.Logger
}

func NewUploadIntake(media libs.MediaStore, cfg UploadConfig, log *zap.Logger) *UploadIntake {
	return &UploadIntake{media: media, cfg: cfg, log: log}
}

// Parse copies the scalar fields and writes every attached file into the media
// store. If any write fails the files already stored by this call are removed.
func (in *UploadIntake) Parse(ctx context.Context, form *multipart.Form) (*models.Submission, error) {
	sub := &models.Submission{Fields: map[string][]string{}, Files: []models.StoredFile{}}
	if form == nil {
		return sub, nil
	}

	for k, v := range form.Value {
		sub.Fields[k] = append([]string(nil), v...)
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		for _, header := range form.File[field] {
			name, err := in.store(ctx, field, header)
			if err != nil {
				in.rollback(ctx, sub.StoredNames())
				return nil, err
			}
			sub.Files = append(sub.Files, models.StoredFile{Field: field, StoredName: name})
		}
	}

	return sub, nil
}

func (in *UploadIntake) store(ctx context.Context, field string, header *multipart.FileHeader) (string, error) {
	if in.cfg.MaxFileSize > 0 && header.Size > in.cfg.MaxFileSize {
		return "", models.NewValidationError(field, "file exceeds %d bytes", in.cfg.MaxFileSize)
	}

	f, err := header.Open()
	if err != nil {
		return "", models.WrapStorage("open upload "+field, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = detectExtension(f)
	}

	name, err := in.media.Store(ctx, field, ext, f)
	if err != nil {
		return "", models.WrapStorage("store upload "+field, err)
	}

	in.log.Debug("upload stored", zap.String("field", field), zap.String("name", name), zap.Int64("size", header.Size))
	return name, nil
}

// detectExtension sniffs the content when the client sent no extension.
func detectExtension(f multipart.File) string {
	mtype, err := mimetype.DetectReader(f)
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil || err != nil {
		return ""
	}
	if mtype.Is("application/octet-stream") {
		return ""
	}
	return mtype.Extension()
}

func (in *UploadIntake) rollback(ctx context.Context, names []string) {
	for _, name := range names {
		if err := in.media.Delete(ctx, name); err != nil {
			in.log.Warn("failed to remove partial upload", zap.String("name", name), zap.Error(err))
		}
	}
}
