package packer

import (
	"testing"
	"time"
)
import "github.com/stretchr/testify/require"

func TestDetail_RoundTrip(t *testing.T) {
	in := &Detail{
		DurationNs: (42 * time.Millisecond).Nanoseconds(),
		Error:      "task panicked: nil map write",
		Panicked:   true,
	}

	raw, err := EncodeDetail(in)
	require.NoError(t, err)

	out, err := DecodeDetail(raw)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeDetail_Garbage(t *testing.T) {
	_, err := DecodeDetail([]byte("not msgpack"))
	require.Error(t, err)
}
