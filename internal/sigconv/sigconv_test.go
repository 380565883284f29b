package sigconv

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bytes32(b byte, n int) []byte {
	out := make([]byte, 32)
	for i := 32 - n; i < 32; i++ {
		out[i] = b
	}
	return out
}

func TestToDER_WrongLength(t *testing.T) {
	_, err := ToDER(make([]byte, 63))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestToDER_RoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"all zero":             make([]byte, 64),
		"leading zero in s":    append(bytes32(0, 0), bytes32(0x7f, 31)...),
		"top bit set in r":     append(bytes32(0xff, 32), bytes32(0x01, 1)...),
		"ordinary value":       append(bytes32(0x42, 20), bytes32(0x01, 10)...),
		"top bit set in both":  append(bytes32(0x80, 32), bytes32(0x80, 32)...),
		"single byte non-zero": append(bytes32(0, 0), bytes32(0x05, 1)...),
	}

	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			require.Len(t, raw, 64)

			der, err := ToDER(raw)
			require.NoError(t, err)

			r, s := decodeSequence(t, der)

			wantR := new(big.Int).SetBytes(raw[:32])
			wantS := new(big.Int).SetBytes(raw[32:])

			assert.Equal(t, wantR, r)
			assert.Equal(t, wantS, s)
		})
	}
}

func TestToDER_TopBitGetsZeroPrefix(t *testing.T) {
	raw := append(bytes32(0xff, 32), bytes32(0x01, 32)...)

	der, err := ToDER(raw)
	require.NoError(t, err)

	// SEQUENCE tag, length, INTEGER tag, length must be 33 (0x21) with a
	// leading 0x00 byte because the top bit of 0xff... is set.
	require.Equal(t, byte(0x30), der[0])
	require.Equal(t, byte(0x02), der[2])
	require.Equal(t, byte(33), der[3])
	require.Equal(t, byte(0x00), der[4])
}

// decodeSequence parses the minimal DER SEQUENCE(INTEGER, INTEGER) shape
// this package produces, without depending on a generic ASN.1 library
// itself (the point under test is the hand-written encoder).
func decodeSequence(t *testing.T, der []byte) (*big.Int, *big.Int) {
	t.Helper()

	require.GreaterOrEqual(t, len(der), 2)
	require.Equal(t, byte(0x30), der[0])
	seqLen := int(der[1])
	require.Equal(t, seqLen, len(der)-2)

	rest := der[2:]

	r, rest := readInteger(t, rest)
	s, rest := readInteger(t, rest)
	require.Empty(t, rest)

	return r, s
}

func readInteger(t *testing.T, data []byte) (*big.Int, []byte) {
	t.Helper()

	require.GreaterOrEqual(t, len(data), 2)
	require.Equal(t, byte(0x02), data[0])
	length := int(data[1])
	require.GreaterOrEqual(t, len(data), 2+length)

	content := data[2 : 2+length]

	// A DER INTEGER with top bit set to 1 on the first content byte, but
	// intended unsigned, was padded with a 0x00 that is not part of the
	// magnitude.
	if len(content) > 1 && content[0] == 0x00 {
		content = content[1:]
	}

	return new(big.Int).SetBytes(content), data[2+length:]
}
