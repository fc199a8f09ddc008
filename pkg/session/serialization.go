package session

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	markerPlain   byte = 0
	markerGzipped byte = 1
)

// DefaultCompressionThreshold is the encoded size above which payloads are
// gzipped.
const DefaultCompressionThreshold = 1024

// MsgPackSerializer encodes values as MessagePack behind a one-byte marker
// that records whether the payload was gzipped.
type MsgPackSerializer struct {
	UseCompression       bool
	CompressionThreshold int
}

// NewMsgPackSerializer returns a serializer compressing payloads of at least
// DefaultCompressionThreshold bytes.
func NewMsgPackSerializer() *MsgPackSerializer {
	return &MsgPackSerializer{
		UseCompression:       true,
		CompressionThreshold: DefaultCompressionThreshold,
	}
}

// Marshal serializes v.
func (s *MsgPackSerializer) Marshal(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("session: encode: %w", err)
	}

	if s.UseCompression && len(data) >= s.CompressionThreshold {
		compressed, err := compress(data)
		if err == nil {
			return append([]byte{markerGzipped}, compressed...), nil
		}
	}
	return append([]byte{markerPlain}, data...), nil
}

// Unmarshal deserializes data into v.
func (s *MsgPackSerializer) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return ErrInvalidData
	}

	payload := data[1:]
	switch data[0] {
	case markerPlain:
	case markerGzipped:
		decompressed, err := decompress(payload)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		payload = decompressed
	default:
		return fmt.Errorf("%w: unknown marker %#x", ErrInvalidData, data[0])
	}

	if err := msgpack.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return io.ReadAll(gz)
}
