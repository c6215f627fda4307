package songdl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Download interface {
	// AddDownloadedBytes increases how many bytes have been successfully written so far.
	AddDownloadedBytes(n int64)

	// AddExpectedBytes increases how many bytes are expected to be written.
	AddExpectedBytes(n int64)

	// Cancel the Download, stopping any in-progress I/O activity.
	Cancel()

	// Context is the cancellable context of this Download.
	Context() context.Context

	// Progress returns the downloaded and expected bytes of the download.
	Progress() (int64, int64)

	// SaveStream writes the stream to the named file in the target directory, returning the full path. On failure
	// the partially written file is removed.
	SaveStream(filename string, stream io.Reader) (string, error)

	// TargetPath is the full path SaveStream would write filename to.
	TargetPath(filename string) string

	// Write ignores the data but adds the byte count to AddDownloadedBytes, so the Download can be the last writer of
	// an io.MultiWriter.
	Write(p []byte) (n int, err error)
}

type download struct {
	ctx              context.Context
	cancel           context.CancelFunc
	progressCallback ProgressFunc
	targetDir        string
	expectedBytes    int64
	downloadedBytes  int64
}

func (d *download) AddDownloadedBytes(n int64) {
	d.downloadedBytes += n
	if d.progressCallback != nil {
		d.progressCallback(d.Progress())
	}
}

func (d *download) AddExpectedBytes(n int64) {
	d.expectedBytes += n
	if d.progressCallback != nil {
		d.progressCallback(d.Progress())
	}
}

func (d *download) Cancel() {
	d.cancel()
}

func (d *download) Context() context.Context {
	return d.ctx
}

func (d *download) Progress() (int64, int64) {
	return d.downloadedBytes, d.expectedBytes
}

func (d *download) SaveStream(filename string, stream io.Reader) (_ string, err error) {
	target := d.TargetPath(filename)
	f, err := os.Create(target)
	if err != nil {
		return "", NewError(ErrIO, "save", fmt.Errorf("failed to open target file: %w", err))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = NewError(ErrIO, "save", closeErr)
		}
		if err != nil {
			_ = os.Remove(target)
		}
	}()

	_, err = io.Copy(io.MultiWriter(f, d), &readerContext{ctx: d.ctx, r: stream})
	if err != nil {
		if ctxErr := d.ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", NewError(ErrIO, "save", fmt.Errorf("failed to save stream: %w", err))
	}
	return target, nil
}

func (d *download) TargetPath(filename string) string {
	return filepath.Join(d.targetDir, filename)
}

func (d *download) Write(p []byte) (n int, err error) {
	n = len(p)
	d.AddDownloadedBytes(int64(n))
	return n, nil
}

type DownloadBuilder interface {
	Build() (Download, error)
	WithContext(ctx context.Context) DownloadBuilder
	WithProgressCallback(f ProgressFunc) DownloadBuilder
	WithTargetDir(dir string) DownloadBuilder
}

type downloadBuilder struct {
	ctx              context.Context
	progressCallback ProgressFunc
	targetDir        string
}

func NewDownloadBuilder() DownloadBuilder {
	return &downloadBuilder{
		ctx:       context.Background(),
		targetDir: ".",
	}
}

// Build checks that the target directory exists; it is never created, because a missing directory almost always
// means a typo in the form.
func (b *downloadBuilder) Build() (Download, error) {
	info, err := os.Stat(b.targetDir)
	if err != nil {
		return nil, NewError(ErrIO, "download", err)
	} else if !info.IsDir() {
		return nil, Errorf(ErrIO, "download", "not a directory: %v", b.targetDir)
	}
	d := download{}
	d.ctx, d.cancel = context.WithCancel(b.ctx)
	d.progressCallback = b.progressCallback
	d.targetDir = b.targetDir
	return &d, nil
}

func (b *downloadBuilder) WithContext(ctx context.Context) DownloadBuilder {
	b.ctx = ctx
	return b
}

func (b *downloadBuilder) WithProgressCallback(f ProgressFunc) DownloadBuilder {
	b.progressCallback = f
	return b
}

func (b *downloadBuilder) WithTargetDir(dir string) DownloadBuilder {
	b.targetDir = dir
	return b
}
