package schema

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// CompressorKind names a compression algorithm.
type CompressorKind uint8

const (
	NoCompression CompressorKind = iota
	GzipCompression
	ZlibCompression
	ZstdCompression
	SnappyCompression
	S2Compression
)

var compressorNames = [...]string{
	NoCompression:     "None",
	GzipCompression:   "Gzip",
	ZlibCompression:   "Zlib",
	ZstdCompression:   "Zstd",
	SnappyCompression: "Snappy",
	S2Compression:     "S2",
}

func (k CompressorKind) valid() bool {
	return int(k) < len(compressorNames)
}

func (k CompressorKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("compressor(%d)", uint8(k))
	}
	return compressorNames[k]
}

// ParseCompressorKind returns the kind named by s (case-insensitive).
func ParseCompressorKind(s string) (CompressorKind, error) {
	for i, name := range compressorNames {
		if strings.EqualFold(name, s) {
			return CompressorKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown compressor %q", s)
}

// Compressor identifies a compression algorithm plus level. Level 0 means
// the codec default; Snappy and S2 take no level at all.
type Compressor struct {
	Kind  CompressorKind
	Level int
}

func (c Compressor) String() string {
	if c.Kind == NoCompression || c.Level == 0 {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s:%d", c.Kind, c.Level)
}

// Validate checks that the kind is known and the level is in range for it.
func (c Compressor) Validate() error {
	if !c.Kind.valid() {
		return fmt.Errorf("unknown compressor kind %d", uint8(c.Kind))
	}
	switch c.Kind {
	case NoCompression, SnappyCompression, S2Compression:
		if c.Level != 0 {
			return fmt.Errorf("%s takes no compression level, got %d", c.Kind, c.Level)
		}
	case GzipCompression, ZlibCompression:
		if c.Level < 0 || c.Level > gzip.BestCompression {
			return fmt.Errorf("%s level %d out of range [0,%d]", c.Kind, c.Level, gzip.BestCompression)
		}
	case ZstdCompression:
		if c.Level < 0 || c.Level > 22 {
			return fmt.Errorf("zstd level %d out of range [0,22]", c.Level)
		}
	}
	return nil
}

// SupportsVarCells reports whether the codec can compress variable-length
// cell data. Snappy and S2 are block codecs over fixed-size cells here.
func (c Compressor) SupportsVarCells() bool {
	return c.Kind != SnappyCompression && c.Kind != S2Compression
}

// Compress returns src compressed with the descriptor's codec.
func (c Compressor) Compress(src []byte) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Kind {
	case NoCompression:
		return append([]byte(nil), src...), nil
	case GzipCompression:
		return writerCompress(src, func(buf *bytes.Buffer) (writeFlusher, error) {
			return gzip.NewWriterLevel(buf, gzipLevel(c.Level))
		})
	case ZlibCompression:
		return writerCompress(src, func(buf *bytes.Buffer) (writeFlusher, error) {
			return zlib.NewWriterLevel(buf, gzipLevel(c.Level))
		})
	case ZstdCompression:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(c.Level)))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(src, nil), nil
	case SnappyCompression:
		return snappy.Encode(nil, src), nil
	case S2Compression:
		return s2.Encode(nil, src), nil
	}
	return nil, fmt.Errorf("unknown compressor kind %d", uint8(c.Kind))
}

// Decompress reverses Compress.
func (c Compressor) Decompress(src []byte) ([]byte, error) {
	switch c.Kind {
	case NoCompression:
		return append([]byte(nil), src...), nil
	case GzipCompression:
		r, err := gzip.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(r); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ZlibCompression:
		r, err := zlib.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(r); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ZstdCompression:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(src, nil)
	case SnappyCompression:
		return snappy.Decode(nil, src)
	case S2Compression:
		return s2.Decode(nil, src)
	}
	return nil, fmt.Errorf("unknown compressor kind %d", uint8(c.Kind))
}

type writeFlusher interface {
	Write(p []byte) (int, error)
	Close() error
}

func writerCompress(src []byte, newWriter func(*bytes.Buffer) (writeFlusher, error)) ([]byte, error) {
	var buf bytes.Buffer
	w, err := newWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipLevel(level int) int {
	if level == 0 {
		return gzip.DefaultCompression
	}
	return level
}

func zstdLevel(level int) zstd.EncoderLevel {
	if level == 0 {
		return zstd.SpeedDefault
	}
	return zstd.EncoderLevelFromZstd(level)
}
