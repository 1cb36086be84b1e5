package liftcoords

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// ReadSeekCloser combines the three interfaces every input source here must
// satisfy: local files do so natively, Google Storage objects via
// GSReadSeekCloser.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// GSReadSeekCloser adapts a Google Storage object handle to ReadSeekCloser.
// Object readers cannot truly seek, so Seek closes the current range reader
// and reopens one at the requested offset. Derived from
// https://github.com/googleapis/google-cloud-go/issues/1124#issuecomment-419070541
type GSReadSeekCloser struct {
	*storage.ObjectHandle
	Context context.Context

	r      *storage.Reader
	offset int64
}

func (s *GSReadSeekCloser) Read(p []byte) (int, error) {
	if s.r == nil {
		var err error
		s.r, err = s.NewRangeReader(s.Context, s.offset, -1)
		if err != nil {
			return 0, err
		}
	}

	n, err := s.r.Read(p)
	s.offset += int64(n)

	return n, err
}

func (s *GSReadSeekCloser) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		// Keep offset as given
	case io.SeekCurrent:
		offset += s.offset
	default:
		return 0, fmt.Errorf("GSReadSeekCloser: whence %d is not supported", whence)
	}

	if s.r != nil {
		s.r.Close()
		s.r = nil
	}
	s.offset = offset

	return s.offset, nil
}

func (s *GSReadSeekCloser) Close() error {
	if s.r != nil {
		return s.r.Close()
	}

	return nil
}

// MaybeOpenSeekerFromGoogleStorage opens path as a Google Storage object
// when it carries a gs:// prefix and a client is provided, and as a local
// file otherwise.
func MaybeOpenSeekerFromGoogleStorage(path string, client *storage.Client) (ReadSeekCloser, error) {
	if client == nil || !strings.HasPrefix(path, "gs://") {
		return os.Open(path)
	}

	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return nil, fmt.Errorf("expected gs://bucket/path but got %s", path)
	}

	handle := client.Bucket(pathParts[0]).Object(pathParts[1])

	return &GSReadSeekCloser{
		ObjectHandle: handle,
		Context:      context.Background(),
	}, nil
}
