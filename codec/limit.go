package codec

import "fmt"

// Limit wraps another codec and rejects oversized payloads at Decode time.
// Encode is forwarded unchanged. Max <= 0 disables the check.
//
// Typical use: protect against oversized or foreign values read back from a
// shared store.
type Limit[V any] struct {
	Inner Codec[V] // must be set
	Max   int      // maximum permitted Decode payload length in bytes
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.Max > 0 && len(b) > c.Max {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.Max)
	}
	return c.Inner.Decode(b)
}
