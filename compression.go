package liftcoords

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// Compression identifies the compression wrapper around a stream, if any.
type Compression byte

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionZlib
	CompressionBzip2
)

// Magic numbers per https://stackoverflow.com/a/19127748/199475
var compressionMagic = []struct {
	kind Compression
	sig  []byte
}{
	{CompressionGzip, []byte{0x1f, 0x8b, 0x08}},
	{CompressionZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{CompressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{CompressionZlib, []byte{0x78, 0x9c}},
	{CompressionBzip2, []byte{0x42, 0x5a, 0x68}},
}

// SniffCompression reads the first few bytes of r and matches them against
// known compression signatures. The reader is advanced by up to 6 bytes.
func SniffCompression(r io.Reader) (Compression, error) {
	buff := make([]byte, 6)
	n, err := io.ReadAtLeast(r, buff, 1)
	if err != nil {
		return CompressionUnknown, err
	}

	for _, m := range compressionMagic {
		if n >= len(m.sig) && bytes.Equal(buff[:len(m.sig)], m.sig) {
			return m.kind, nil
		}
	}

	// No signature matched; assume plain text.
	return CompressionNone, nil
}

// MaybeDecompress sniffs rs and returns a reader yielding its decompressed
// contents. Uncompressed input is passed through unchanged. Chain files and
// large coordinate tables are almost always gzipped, so callers should not
// assume plain text.
func MaybeDecompress(rs io.ReadSeeker) (io.ReadCloser, error) {
	kind, err := SniffCompression(rs)
	if err != nil {
		return nil, err
	}

	// Rewind so the decompressor sees the signature bytes again.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch kind {
	case CompressionGzip:
		return gzip.NewReader(rs)
	case CompressionZip:
		return &nopCloseReader{zipstream.NewReader(rs)}, nil
	case CompressionBzip2:
		return &nopCloseReader{bzip2.NewReader(rs)}, nil
	case CompressionXZ:
		xzr, err := xz.NewReader(rs, 0)
		if err != nil {
			return nil, err
		}
		return &nopCloseReader{xzr}, nil
	case CompressionZlib:
		return zlib.NewReader(rs)
	}

	if rc, ok := rs.(io.ReadCloser); ok {
		return rc, nil
	}

	return io.NopCloser(rs), nil
}

// nopCloseReader upgrades readers that have nothing to close.
type nopCloseReader struct {
	io.Reader
}

func (nopCloseReader) Close() error { return nil }
