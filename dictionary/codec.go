package dictionary

import (
	"bytes"
	"compress/flate"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// CompressAlgorithm tags how a dictionary blob is stored on disk, mirroring
// the reference's self-describing compression envelope (spec.md §3, §5):
// every *.bin file opens with one byte of algorithm tag so a loader never
// has to be told out-of-band how a blob was written.
type CompressAlgorithm byte

const (
	CompressIdentity CompressAlgorithm = iota
	CompressDeflate
	CompressZstandard
)

// EncodeBlob prepends the one-byte algorithm tag and compresses payload
// accordingly. Identity performs no transformation past the tag byte.
func EncodeBlob(algo CompressAlgorithm, payload []byte) ([]byte, error) {
	switch algo {
	case CompressIdentity:
		out := make([]byte, 1+len(payload))
		out[0] = byte(CompressIdentity)
		copy(out[1:], payload)
		return out, nil

	case CompressDeflate:
		var buf bytes.Buffer
		buf.WriteByte(byte(CompressDeflate))
		w, err := flate.NewWriter(&buf, flate.BestCompression)
		if err != nil {
			return nil, kerr.New(kerr.Compression, err).WithContext("creating deflate writer")
		}
		if _, err := w.Write(payload); err != nil {
			return nil, kerr.New(kerr.Compression, err).WithContext("writing deflate payload")
		}
		if err := w.Close(); err != nil {
			return nil, kerr.New(kerr.Compression, err).WithContext("closing deflate writer")
		}
		return buf.Bytes(), nil

	case CompressZstandard:
		var buf bytes.Buffer
		buf.WriteByte(byte(CompressZstandard))
		w, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, kerr.New(kerr.Compression, err).WithContext("creating zstd writer")
		}
		if _, err := w.Write(payload); err != nil {
			w.Close()
			return nil, kerr.New(kerr.Compression, err).WithContext("writing zstd payload")
		}
		if err := w.Close(); err != nil {
			return nil, kerr.New(kerr.Compression, err).WithContext("closing zstd writer")
		}
		return buf.Bytes(), nil

	default:
		return nil, kerr.Newf(kerr.Compression, "unknown compress algorithm tag %d", algo)
	}
}

// DecodeBlob reads the one-byte algorithm tag and returns the decompressed
// payload. An unrecognized tag is not an error (spec.md §4.1): the envelope
// probe fails open, and data is returned unchanged as the raw payload.
func DecodeBlob(data []byte) ([]byte, error) {
	if len(data) < 1 {
		return data, nil
	}
	algo := CompressAlgorithm(data[0])
	body := data[1:]

	switch algo {
	case CompressIdentity:
		return body, nil

	case CompressDeflate:
		r := flate.NewReader(bytes.NewReader(body))
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, kerr.New(kerr.Compression, err).WithContext("inflating deflate payload")
		}
		return out, nil

	case CompressZstandard:
		r, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, kerr.New(kerr.Compression, err).WithContext("creating zstd reader")
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, kerr.New(kerr.Compression, err).WithContext("inflating zstd payload")
		}
		return out, nil

	default:
		return data, nil
	}
}
