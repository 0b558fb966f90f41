package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/corebench/internal/conv"
)

// Kind defines the compression algorithm used.
type Kind uint8

const (
	// KindNone stores data unframed.
	KindNone Kind = iota
	// KindLZ4 uses LZ4 block compression (fast).
	KindLZ4
	// KindZSTD uses ZSTD compression (better ratio).
	KindZSTD
)

var (
	// ErrUnknownKind is returned for unsupported compression kinds.
	ErrUnknownKind = errors.New("compress: unknown kind")
	// ErrCorrupt is returned when a frame is truncated or inconsistent.
	ErrCorrupt = errors.New("compress: corrupt frame")
)

// ParseKind parses "none", "lz4" or "zstd".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return KindNone, nil
	case "lz4":
		return KindLZ4, nil
	case "zstd", "zst":
		return KindZSTD, nil
	default:
		return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLZ4:
		return "lz4"
	case KindZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Ext returns the file name extension for k, including the dot.
func (k Kind) Ext() string {
	switch k {
	case KindLZ4:
		return ".lz4"
	case KindZSTD:
		return ".zst"
	default:
		return ""
	}
}

// KindFromName returns the kind matching the extension of name.
func KindFromName(name string) Kind {
	switch {
	case strings.HasSuffix(name, KindLZ4.Ext()):
		return KindLZ4
	case strings.HasSuffix(name, KindZSTD.Ext()):
		return KindZSTD
	default:
		return KindNone
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

const headerSize = 8

// Encode compresses data with kind and frames it.
func Encode(data []byte, kind Kind) ([]byte, error) {
	if kind == KindNone {
		return data, nil
	}
	rawSize, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, fmt.Errorf("compress: frame limit: %w", err)
	}

	var compressed []byte
	switch kind {
	case KindLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0: incompressible
	case KindZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	// Store uncompressed unless compression saves at least 10%.
	stored := len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9
	payload := compressed
	if stored {
		payload = data
	}

	out := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:], rawSize)
	if !stored {
		binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed))) //nolint:gosec // smaller than rawSize
	}
	copy(out[headerSize:], payload)
	return out, nil
}

// Decode unframes data and decompresses it with kind.
func Decode(data []byte, kind Kind) ([]byte, error) {
	if kind == KindNone {
		return data, nil
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrCorrupt, len(data), headerSize)
	}

	uncompressedSize, err := conv.Uint64ToInt(uint64(binary.LittleEndian.Uint32(data[0:])))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	compressedSize, err := conv.Uint64ToInt(uint64(binary.LittleEndian.Uint32(data[4:])))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	body := data[headerSize:]

	if compressedSize == 0 {
		if len(body) < uncompressedSize {
			return nil, fmt.Errorf("%w: stored block truncated", ErrCorrupt)
		}
		return body[:uncompressedSize], nil
	}
	if len(body) < compressedSize {
		return nil, fmt.Errorf("%w: compressed block truncated", ErrCorrupt)
	}
	body = body[:compressedSize]

	result := make([]byte, uncompressedSize)
	switch kind {
	case KindLZ4:
		n, err := lz4.UncompressBlock(body, result)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if n != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return result, nil
	case KindZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		decoded, err := dec.DecodeAll(body, result[:0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if len(decoded) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}
