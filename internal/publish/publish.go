// Package publish packs the files of a finished run and uploads them to
// Azure Blob Storage.
package publish

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/klauspost/compress/zstd"
	"github.com/spboyer/socialcc/internal/utils"
)

// Archive writes files as a zstd-compressed tar stream to w. Entry names
// are relative to base. Files that do not exist are left out and returned
// in missing.
func Archive(w io.Writer, base string, files []string) (added, missing []string, err error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, nil, fmt.Errorf("creating zstd writer: %w", err)
	}

	tw := tar.NewWriter(zw)

	for _, f := range files {
		name, err := addFile(tw, base, f)
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, f)
			continue
		}
		if err != nil {
			tw.Close() //nolint:errcheck
			zw.Close() //nolint:errcheck
			return nil, nil, err
		}
		added = append(added, name)
	}

	if err := tw.Close(); err != nil {
		zw.Close() //nolint:errcheck
		return nil, nil, fmt.Errorf("closing archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("closing zstd stream: %w", err)
	}

	return added, missing, nil
}

func addFile(tw *tar.Writer, base, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	name, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(name, "..") {
		name = filepath.Base(path)
	}
	name = filepath.ToSlash(name)

	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return "", fmt.Errorf("writing header for %s: %w", name, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return "", fmt.Errorf("archiving %s: %w", name, err)
	}
	return name, nil
}

// ArchiveName is the blob name for a model's run archive.
func ArchiveName(model string, ts time.Time) string {
	return fmt.Sprintf("socialcc-%s-%s.tar.zst", utils.SanitizeModelName(model), ts.UTC().Format("20060102-150405"))
}

// BlobUploader is the part of *azblob.Client the publisher uses.
type BlobUploader interface {
	UploadFile(ctx context.Context, containerName string, blobName string, file *os.File, o *azblob.UploadFileOptions) (azblob.UploadFileResponse, error)
}

// Uploader sends files to one blob container.
type Uploader struct {
	client    BlobUploader
	container string
	logger    *slog.Logger
}

// NewUploader creates an uploader for accountURL. A nil credential means
// the URL already carries a SAS token.
func NewUploader(accountURL, container string, cred azcore.TokenCredential, logger *slog.Logger) (*Uploader, error) {
	if accountURL == "" || container == "" {
		return nil, errors.New("publish needs both an account URL and a container")
	}

	var (
		client *azblob.Client
		err    error
	)
	if cred == nil {
		client, err = azblob.NewClientWithNoCredential(accountURL, nil)
	} else {
		client, err = azblob.NewClient(accountURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("creating blob client for %s: %w", accountURL, err)
	}

	return NewUploaderWithClient(client, container, logger), nil
}

// NewUploaderWithClient wraps an existing client.
func NewUploaderWithClient(client BlobUploader, container string, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Uploader{client: client, container: container, logger: logger}
}

// Upload sends the file at path as blobName.
func (u *Uploader) Upload(ctx context.Context, path, blobName string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	start := time.Now()
	if _, err := u.client.UploadFile(ctx, u.container, blobName, f, &azblob.UploadFileOptions{
		Metadata: map[string]*string{"source": utils.Ptr("socialcc")},
	}); err != nil {
		return fmt.Errorf("uploading %s to %s/%s: %w", path, u.container, blobName, err)
	}

	u.logger.Info("uploaded", "container", u.container, "blob", blobName, "duration", time.Since(start))
	return nil
}

// Options describes one publish.
type Options struct {
	// Base is the directory archive entry names are relative to.
	Base  string
	Model string
	Files []string
	// ArchiveDir receives the .tar.zst file.
	ArchiveDir string
	// Uploader is nil when the archive should only be written locally.
	Uploader *Uploader
	Now      func() time.Time
}

// Result says what was published.
type Result struct {
	ArchivePath string
	// Blob is empty when nothing was uploaded.
	Blob    string
	Files   []string
	Missing []string
}

// Publish archives the run files and, with an uploader, sends the
// archive to blob storage.
func Publish(ctx context.Context, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = utils.Discard()
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	name := ArchiveName(opts.Model, now())
	path := filepath.Join(opts.ArchiveDir, name)

	if err := os.MkdirAll(opts.ArchiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", opts.ArchiveDir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	added, missing, err := Archive(f, opts.Base, opts.Files)
	closeErr := f.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, fmt.Errorf("writing archive: %w", closeErr)
	}
	if len(added) == 0 {
		return nil, fmt.Errorf("no run files found for model %s", opts.Model)
	}

	for _, m := range missing {
		logger.Warn("run file not found, left out of archive", "path", m)
	}
	logger.Info("archive written", "path", path, "files", len(added))

	res := &Result{ArchivePath: path, Files: added, Missing: missing}

	if opts.Uploader != nil {
		if err := opts.Uploader.Upload(ctx, path, name); err != nil {
			return nil, err
		}
		res.Blob = name
	}

	return res, nil
}
