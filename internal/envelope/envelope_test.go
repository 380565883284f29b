package envelope

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/minvws/base45-go/eubase45"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, raw []byte) string {
	t.Helper()

	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	b45 := eubase45.EUBase45Encode(zbuf.Bytes())

	return "HC1:" + string(b45)
}

func TestDecode_RoundTrip(t *testing.T) {
	want := []byte("a small COSE payload")

	got, err := Decode(encode(t, want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecode_UnknownVersion(t *testing.T) {
	_, err := Decode("HC2:6BF")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestDecode_NoPrefixSeparator(t *testing.T) {
	_, err := Decode("nocolonhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestDecode_EmptyBody(t *testing.T) {
	_, err := Decode("HC1:")
	require.Error(t, err)
}

func TestDecode_InvalidBase45(t *testing.T) {
	_, err := Decode("HC1:\x01\x02not-base45")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBase45)
}

func TestDecode_InvalidZlib(t *testing.T) {
	notZlib := eubase45.EUBase45Encode([]byte("not a zlib stream at all"))

	_, err := Decode("HC1:" + string(notZlib))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInflate)
}
