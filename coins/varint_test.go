package coins

import (
	"bytes"
	"testing"
)

func TestVLQRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		val      uint64
		expected []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"max single byte", 0x7f, []byte{0x7f}},
		{"min two bytes", 0x80, []byte{0x80, 0x00}},
		{"5e9 (50 BTC in satoshis)", 5000000000, []byte{0x80, 0xa8, 0xd6, 0xb9, 0x07}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			size := serializeSizeVLQ(tc.val)
			if size != len(tc.expected) {
				t.Fatalf("serializeSizeVLQ(%d) = %d, want %d", tc.val, size, len(tc.expected))
			}

			buf := make([]byte, size)
			n := putVLQ(buf, tc.val)
			if n != len(tc.expected) {
				t.Fatalf("putVLQ wrote %d bytes, want %d", n, len(tc.expected))
			}
			if !bytes.Equal(buf, tc.expected) {
				t.Fatalf("putVLQ(%d) = %x, want %x", tc.val, buf, tc.expected)
			}

			got, n2, err := deserializeVLQ(buf)
			if err != nil {
				t.Fatalf("deserializeVLQ returned error: %v", err)
			}
			if got != tc.val {
				t.Fatalf("deserializeVLQ = %d, want %d", got, tc.val)
			}
			if n2 != len(tc.expected) {
				t.Fatalf("deserializeVLQ consumed %d bytes, want %d", n2, len(tc.expected))
			}
		})
	}
}

func TestDeserializeVLQTruncated(t *testing.T) {
	_, _, err := deserializeVLQ([]byte{0x80, 0x80})
	if !IsDeserializeErr(err) {
		t.Fatalf("expected ErrDeserialize for truncated varint, got %v", err)
	}

	_, _, err = deserializeVLQ(nil)
	if !IsDeserializeErr(err) {
		t.Fatalf("expected ErrDeserialize for empty input, got %v", err)
	}
}
