package file

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fileshare/internal/storage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, f *File) error {
	args := m.Called(ctx, f)
	if f != nil && f.ID == "" {
		f.ID = "generated-id" // simulate repository id assignment
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*File), args.Error(1)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func newTestService(t *testing.T, repo Repository, m *recordingMailer, maxSize int64) (*Service, *storage.DiskStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := storage.NewDiskStore(fs, "uploads")
	require.NoError(t, err)
	if m == nil {
		m = &recordingMailer{}
	}
	svc := NewService(repo, store, m, "http://localhost:8000", maxSize, log.New(io.Discard))
	return svc, store, fs
}

func blobCount(t *testing.T, fs afero.Fs) int {
	t.Helper()
	entries, err := afero.ReadDir(fs, "uploads")
	require.NoError(t, err)
	return len(entries)
}

func TestUploadSuccess(t *testing.T) {
	repo := new(MockRepository)
	svc, store, _ := newTestService(t, repo, nil, 0)

	var created *File
	repo.On("Create", mock.Anything, mock.AnythingOfType("*file.File")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*File)
			// blob must already be durable when the record is written
			r, err := store.Open(created.StorageName)
			require.NoError(t, err)
			r.Close()
		}).
		Return(nil)

	record, err := svc.Upload(context.Background(), "notes.txt", strings.NewReader("ten bytes."))
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "notes.txt", record.OriginalName)
	assert.Equal(t, int64(10), record.Size)
	assert.True(t, strings.HasSuffix(record.StorageName, ".txt"), record.StorageName)
	assert.NotEmpty(t, record.ID)
	assert.Contains(t, record.MimeType, "text/plain")

	r, err := store.Open(record.StorageName)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ten bytes.", string(data))

	repo.AssertExpectations(t)
}

func TestUploadStripsClientPath(t *testing.T) {
	repo := new(MockRepository)
	svc, _, _ := newTestService(t, repo, nil, 0)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	record, err := svc.Upload(context.Background(), "../../etc/passwd.txt", strings.NewReader("x"))
	require.NoError(t, err)

	assert.Equal(t, "passwd.txt", record.OriginalName)
	assert.NotContains(t, record.StorageName, "/")
	assert.NotContains(t, record.StorageName, "..")
}

func TestUploadPayloadOverDefaultCap(t *testing.T) {
	repo := new(MockRepository)
	svc, _, fs := newTestService(t, repo, nil, 0)

	payload := bytes.Repeat([]byte("a"), 6_000_000)
	_, err := svc.Upload(context.Background(), "big.bin", bytes.NewReader(payload))
	require.ErrorIs(t, err, ErrFileTooLarge)

	// neither a record nor a blob may be left behind
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Zero(t, blobCount(t, fs))
}

func TestUploadEmptyPayload(t *testing.T) {
	repo := new(MockRepository)
	svc, _, fs := newTestService(t, repo, nil, 0)

	_, err := svc.Upload(context.Background(), "empty.txt", strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Zero(t, blobCount(t, fs))
}

func TestUploadNilStream(t *testing.T) {
	repo := new(MockRepository)
	svc, _, _ := newTestService(t, repo, nil, 0)

	_, err := svc.Upload(context.Background(), "missing.txt", nil)
	require.ErrorIs(t, err, ErrNoFile)
}

func TestUploadMetadataFailureLeavesBlobOrphaned(t *testing.T) {
	repo := new(MockRepository)
	svc, store, _ := newTestService(t, repo, nil, 0)

	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.Upload(context.Background(), "doc.pdf", strings.NewReader("%PDF-1.4 pretend"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrFileTooLarge)

	// the blob stays in place; the operation as a whole still failed
	var orphan string
	repo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	orphan = repo.Calls[0].Arguments.Get(1).(*File).StorageName
	r, openErr := store.Open(orphan)
	require.NoError(t, openErr)
	r.Close()
}

func TestShareLinkRoundTrip(t *testing.T) {
	repo := new(MockRepository)
	svc, _, _ := newTestService(t, repo, nil, 0)

	repo.On("GetByID", mock.Anything, "abc-123").
		Return(&File{ID: "abc-123", OriginalName: "notes.txt", StorageName: "x.txt", Size: 10}, nil)

	link, err := svc.ShareLink(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "/file/downloads/abc-123", link)

	// the trailing segment of the link is the record id, exactly
	assert.Equal(t, "abc-123", path.Base(link))
}

func TestShareLinkUnknownID(t *testing.T) {
	repo := new(MockRepository)
	svc, _, _ := newTestService(t, repo, nil, 0)

	repo.On("GetByID", mock.Anything, "nonexistent-id").Return(nil, ErrFileNotFound)

	_, err := svc.ShareLink(context.Background(), "nonexistent-id")
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestDownloadSuccess(t *testing.T) {
	repo := new(MockRepository)
	svc, store, _ := newTestService(t, repo, nil, 0)

	_, err := store.Save("blob-1.txt", strings.NewReader("download me"), 100)
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, "id-1").
		Return(&File{ID: "id-1", OriginalName: "notes.txt", StorageName: "blob-1.txt", Size: 11}, nil)

	record, stream, err := svc.Download(context.Background(), "id-1")
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, "notes.txt", record.OriginalName)
	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "download me", string(data))
}

func TestDownloadUnknownID(t *testing.T) {
	repo := new(MockRepository)
	svc, _, _ := newTestService(t, repo, nil, 0)

	repo.On("GetByID", mock.Anything, "nonexistent-id").Return(nil, ErrFileNotFound)

	_, _, err := svc.Download(context.Background(), "nonexistent-id")
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestDownloadBlobMissing(t *testing.T) {
	repo := new(MockRepository)
	svc, _, _ := newTestService(t, repo, nil, 0)

	// record exists, blob was never written (or deleted out-of-band)
	repo.On("GetByID", mock.Anything, "id-lost").
		Return(&File{ID: "id-lost", OriginalName: "gone.txt", StorageName: "lost.txt", Size: 3}, nil)

	_, _, err := svc.Download(context.Background(), "id-lost")
	require.ErrorIs(t, err, ErrBlobMissing)
	require.NotErrorIs(t, err, ErrFileNotFound)
}

func TestSendShareMail(t *testing.T) {
	repo := new(MockRepository)
	m := &recordingMailer{}
	svc, _, _ := newTestService(t, repo, m, 0)

	repo.On("GetByID", mock.Anything, "id-9").
		Return(&File{ID: "id-9", OriginalName: "notes.txt", StorageName: "x.txt", Size: 10}, nil)

	err := svc.SendShareMail(context.Background(), "id-9", "friend@example.com")
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	assert.Equal(t, "friend@example.com", m.sent[0].To)
	assert.Equal(t, "File Sharing Link", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].Body, "http://localhost:8000/file/downloads/id-9")
	assert.Contains(t, m.sent[0].Body, "notes.txt")
}

func TestSendShareMailTransportFailure(t *testing.T) {
	repo := new(MockRepository)
	m := &recordingMailer{err: assert.AnError}
	svc, _, _ := newTestService(t, repo, m, 0)

	repo.On("GetByID", mock.Anything, "id-9").
		Return(&File{ID: "id-9", OriginalName: "notes.txt", StorageName: "x.txt", Size: 10}, nil)

	err := svc.SendShareMail(context.Background(), "id-9", "friend@example.com")
	require.ErrorIs(t, err, ErrMailFailed)
}

func TestSendShareMailUnknownID(t *testing.T) {
	repo := new(MockRepository)
	m := &recordingMailer{}
	svc, _, _ := newTestService(t, repo, m, 0)

	repo.On("GetByID", mock.Anything, "nonexistent-id").Return(nil, ErrFileNotFound)

	err := svc.SendShareMail(context.Background(), "nonexistent-id", "friend@example.com")
	require.ErrorIs(t, err, ErrFileNotFound)
	assert.Empty(t, m.sent)
}
