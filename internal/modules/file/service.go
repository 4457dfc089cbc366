package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"fileshare/internal/mailer"
	"fileshare/internal/storage"
)

const (
	// DefaultMaxUploadSize caps a single upload at 5 MB unless configured
	// otherwise.
	DefaultMaxUploadSize = 5_000_000

	// SharePathTemplate is the canonical relative link for a record id.
	SharePathTemplate = "/file/downloads/%s"
)

// BlobStore is the physical storage uploads are written to and downloads are
// read from. Names passed in are always generator-produced.
type BlobStore interface {
	Save(name string, src io.Reader, maxBytes int64) (int64, error)
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
}

// Service implements the upload/share/download pipeline on top of the
// metadata repository, the blob store and the injected mail capability.
type Service struct {
	repo    Repository
	store   BlobStore
	mailer  mailer.Mailer
	baseURL string
	maxSize int64
	logger  *log.Logger
}

func NewService(repo Repository, store BlobStore, m mailer.Mailer, baseURL string, maxSize int64, logger *log.Logger) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &Service{
		repo:    repo,
		store:   store,
		mailer:  m,
		baseURL: baseURL,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Upload streams src into the blob store under a fresh generated name, then
// records the metadata. Ordering matters: the record is only created after
// the bytes are durable, so metadata never references a blob that does not
// exist. If the record write fails the orphaned blob is left behind — losing
// bytes is worse than leaking a file an operator can sweep up later.
func (s *Service) Upload(ctx context.Context, originalName string, src io.Reader) (*File, error) {
	if src == nil {
		return nil, ErrNoFile
	}

	storageName := storage.NewName(originalName)

	written, err := s.store.Save(storageName, src, s.maxSize)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, ErrFileTooLarge
		}
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if written == 0 {
		_ = s.store.Remove(storageName)
		return nil, ErrEmptyFile
	}

	record := &File{
		OriginalName: filepath.Base(originalName),
		StorageName:  storageName,
		MimeType:     s.detectMimeType(storageName),
		Size:         written,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("file record create failed after blob write; blob orphaned",
			"storage_name", storageName, "err", err)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	s.logger.Info("file uploaded",
		"id", record.ID,
		"name", record.OriginalName,
		"size", humanize.Bytes(uint64(written)))
	return record, nil
}

// ShareLink validates that id exists and returns the canonical relative link
// for it. Host qualification is left to the caller; the domain is deployment
// configuration, not record state.
func (s *Service) ShareLink(ctx context.Context, id string) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf(SharePathTemplate, id), nil
}

// Download resolves id to the stored bytes. The returned reader is owned by
// the caller and must be closed on every exit path. A record whose blob has
// vanished reports ErrBlobMissing, never ErrFileNotFound: the first is
// corruption needing operator attention, the second is a bad client request.
func (s *Service) Download(ctx context.Context, id string) (*File, io.ReadCloser, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.store.Open(record.StorageName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("blob missing for existing record",
				"id", record.ID, "storage_name", record.StorageName)
			return nil, nil, ErrBlobMissing
		}
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}

	return record, stream, nil
}

func (s *Service) detectMimeType(storageName string) string {
	blob, err := s.store.Open(storageName)
	if err != nil {
		return "application/octet-stream"
	}
	defer blob.Close()

	mt, err := mimetype.DetectReader(blob)
	if err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}
