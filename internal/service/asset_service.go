package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
	"devdeck/internal/storage"
)

// ErrTooLarge is returned when an upload exceeds the configured size limit.
var ErrTooLarge = errors.New("upload too large")

const (
	DefaultMaxUploadBytes = 10 << 20
	DefaultURLExpiry      = 15 * time.Minute
)

// AssetConfig controls where and how uploads are stored.
type AssetConfig struct {
	Bucket         string
	KeyPrefix      string
	MaxUploadBytes int64
	URLExpiry      time.Duration
}

// AssetLink pairs an asset with a time-limited download URL.
type AssetLink struct {
	domain.Asset
	URL string
}

// AssetService uploads user files to object storage and tracks their metadata.
type AssetService interface {
	Enabled() bool
	Upload(ctx context.Context, userID int64, name, contentType string, body io.Reader) (*AssetLink, error)
	List(ctx context.Context, userID int64) ([]AssetLink, error)
	Delete(ctx context.Context, userID, id int64) error
	DeleteAll(ctx context.Context, userID int64) (int64, error)
	Objects(ctx context.Context, userID int64) ([]storage.ObjectInfo, error)
}

type assetService struct {
	assets  repository.AssetRepository
	storage storage.Service
	cfg     AssetConfig
}

// NewAssetService returns an AssetService. A nil store or empty bucket leaves
// the service disabled; every call then fails with ErrUnavailable.
func NewAssetService(assets repository.AssetRepository, store storage.Service, cfg AssetConfig) AssetService {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = DefaultURLExpiry
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &assetService{assets: assets, storage: store, cfg: cfg}
}

func (s *assetService) Enabled() bool {
	return s.storage != nil && s.cfg.Bucket != ""
}

func (s *assetService) checkEnabled() error {
	if !s.Enabled() {
		return fmt.Errorf("%w: object storage is not configured", ErrUnavailable)
	}
	return nil
}

// userPrefix is the key prefix that holds every object of one user.
func (s *assetService) userPrefix(userID int64) string {
	id := strconv.FormatInt(userID, 10)
	if s.cfg.KeyPrefix == "" {
		return id + "/"
	}
	return s.cfg.KeyPrefix + "/" + id + "/"
}

func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, name)
}

func (s *assetService) Upload(ctx context.Context, userID int64, name, contentType string, body io.Reader) (*AssetLink, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
	name = sanitizeFileName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	data, err := io.ReadAll(io.LimitReader(body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.cfg.MaxUploadBytes)
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	sum := sha256.Sum256(data)

	key := s.userPrefix(userID) + uuid.NewString() + "-" + name
	if _, err := s.storage.Put(ctx, storage.PutInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
	}); err != nil {
		return nil, err
	}

	asset := &domain.Asset{
		UserID:      userID,
		Name:        name,
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      hex.EncodeToString(sum[:]),
	}
	if _, err := s.assets.Create(ctx, asset); err != nil {
		if delErr := s.storage.DeleteObject(context.WithoutCancel(ctx), s.cfg.Bucket, key); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}

	url, err := s.storage.GetObjectURL(ctx, s.cfg.Bucket, key, s.cfg.URLExpiry)
	if err != nil {
		return nil, err
	}
	return &AssetLink{Asset: *asset, URL: url}, nil
}

func (s *assetService) List(ctx context.Context, userID int64) ([]AssetLink, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
	assets, err := s.assets.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	links := make([]AssetLink, 0, len(assets))
	for _, asset := range assets {
		url, err := s.storage.GetObjectURL(ctx, s.cfg.Bucket, asset.Key, s.cfg.URLExpiry)
		if err != nil {
			return nil, err
		}
		links = append(links, AssetLink{Asset: asset, URL: url})
	}
	return links, nil
}

// Delete removes the stored object first, then its metadata row.
func (s *assetService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.checkEnabled(); err != nil {
		return err
	}
	asset, err := s.assets.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, s.cfg.Bucket, asset.Key); err != nil {
		return err
	}
	return s.assets.Delete(ctx, userID, id)
}

func (s *assetService) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	if err := s.checkEnabled(); err != nil {
		return 0, err
	}
	if err := s.storage.DeletePrefix(ctx, s.cfg.Bucket, s.userPrefix(userID)); err != nil {
		return 0, err
	}
	return s.assets.DeleteAll(ctx, userID)
}

func (s *assetService) Objects(ctx context.Context, userID int64) ([]storage.ObjectInfo, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
	return s.storage.ListObjects(ctx, s.cfg.Bucket, s.userPrefix(userID))
}
