package dictionary

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// Data is the immutable byte-slice backing for every blob in the dictionary
// substrate. It is a tagged variant over the three ways a dictionary can be
// held in memory (spec.md §5): a statically linked byte slice, an owned
// heap buffer, or a read-only memory map. All three expose the same
// zero-copy []byte view; only the lifetime and ownership differ.
type Data interface {
	// Bytes returns the backing slice. The slice must not be mutated or
	// retained past the lifetime of the Data value it came from.
	Bytes() []byte
}

type staticData []byte

func (d staticData) Bytes() []byte { return d }

// StaticData wraps a byte slice compiled into the binary (e.g. via
// go:embed). The core never copies it.
func StaticData(b []byte) Data { return staticData(b) }

type ownedData []byte

func (d ownedData) Bytes() []byte { return d }

// OwnedData wraps a heap-allocated buffer, typically the output of
// decompression or an explicit os.ReadFile.
func OwnedData(b []byte) Data { return ownedData(b) }

type mappedData struct {
	m mmap.MMap
}

func (d mappedData) Bytes() []byte { return d.m }

// MapFile memory-maps filename read-only, following the teacher's
// mmap.Map(file, mmap.RDONLY, 0) pattern (analyzer.go's loadInternal). The
// returned Data keeps the underlying mmap.MMap alive; callers that need to
// release the mapping should keep the concrete value and call Close.
func MapFile(filename string) (Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, kerr.New(kerr.IO, err).WithContext("opening dictionary file for mmap")
	}
	defer file.Close()

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, kerr.New(kerr.IO, err).WithContext("mmap.Map on dictionary file")
	}
	return mappedData{m: m}, nil
}

// Closeable backings (currently only mappedData) can be unmapped
// explicitly; callers that don't care can just let the process exit.
type Closer interface {
	Close() error
}

func (d mappedData) Close() error {
	return d.m.Unmap()
}
