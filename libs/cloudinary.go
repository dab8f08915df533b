package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryConfig struct {
	URL        string
	CloudName  string
	APIKey     string
	APISecret  string
	Folder     string
	VideoField string
}

// CloudinaryMediaStore keeps the same bare-name convention as the local store;
// the public ID is "<folder>/<name without extension>".
type CloudinaryMediaStore struct {
	cld        *cloudinary.Cloudinary
	folder     string
	videoField string
}

func NewCloudinaryMediaStore(cfg CloudinaryConfig) (*CloudinaryMediaStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)

	switch {
	case cfg.CloudName != "" && cfg.APIKey != "" && cfg.APISecret != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	case cfg.URL != "":
		cld, err = cloudinary.NewFromURL(cfg.URL)
	default:
		return nil, errors.New("cloudinary credentials not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryMediaStore{cld: cld, folder: cfg.Folder, videoField: cfg.VideoField}, nil
}

func (s *CloudinaryMediaStore) Store(ctx context.Context, field, ext string, r io.Reader) (string, error) {
	name := NewStoredName(field, ext)

	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     strings.TrimSuffix(name, path.Ext(name)),
		Folder:       s.folder,
		ResourceType: s.resourceType(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if resp == nil || resp.Error.Message != "" {
		msg := "empty response"
		if resp != nil {
			msg = resp.Error.Message
		}
		return "", fmt.Errorf("cloudinary upload rejected: %s", msg)
	}

	return name, nil
}

func (s *CloudinaryMediaStore) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return fmt.Errorf("invalid media name %q", name)
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.publicID(name),
		ResourceType: s.resourceType(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}

	switch result.Result {
	case "ok":
		return nil
	case "not found":
		return fmt.Errorf("%w: %s", ErrMediaNotFound, name)
	default:
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
}

func (s *CloudinaryMediaStore) publicID(name string) string {
	id := strings.TrimSuffix(name, path.Ext(name))
	if s.folder == "" {
		return id
	}
	return s.folder + "/" + id
}

func (s *CloudinaryMediaStore) resourceType(name string) string {
	if s.videoField != "" && strings.HasPrefix(name, sanitizeField(s.videoField)+"-") {
		return "video"
	}
	return "image"
}
