package cosewire

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := cbor.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestParse_Untagged(t *testing.T) {
	data := mustMarshal(t, wireSign1{
		Protected:   []byte{0xa1, 0x01, 0x26},
		Unprotected: map[interface{}]interface{}{uint64(4): []byte("kid1")},
		Payload:     []byte("hello payload"),
		Signature:   make([]byte, 64),
	})

	sign1, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa1, 0x01, 0x26}, sign1.Protected)
	assert.Equal(t, []byte("hello payload"), sign1.Payload)
	assert.Len(t, sign1.Signature, 64)
}

func TestParse_Tagged(t *testing.T) {
	untagged := mustMarshal(t, wireSign1{
		Protected:   []byte{0xa0},
		Unprotected: map[interface{}]interface{}{},
		Payload:     []byte("x"),
		Signature:   make([]byte, 64),
	})

	tagged := append([]byte{sign1Tag}, untagged...)

	sign1, err := Parse(tagged)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), sign1.Payload)
}

func TestParse_NotAnArray(t *testing.T) {
	data := mustMarshal(t, map[string]string{"not": "an array"})

	_, err := Parse(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStructure)
}

func TestParse_WrongArity(t *testing.T) {
	type wrongArity struct {
		_ struct{} `cbor:",toarray"`
		A []byte
		B []byte
	}
	data := mustMarshal(t, wrongArity{A: []byte("a"), B: []byte("b")})

	_, err := Parse(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStructure)
}

func TestParseHeaders_Empty(t *testing.T) {
	h, err := ParseHeaders(nil)
	require.NoError(t, err)
	assert.Nil(t, h.Alg)
	assert.Nil(t, h.Kid)
}

func TestParseHeaders_AlgAndKid(t *testing.T) {
	data := mustMarshal(t, map[int]interface{}{
		1: -7,
		4: []byte("kid-bytes"),
	})

	h, err := ParseHeaders(data)
	require.NoError(t, err)
	require.NotNil(t, h.Alg)
	assert.EqualValues(t, -7, *h.Alg)
	assert.Equal(t, []byte("kid-bytes"), h.Kid)
}

func TestParseHeaders_DuplicateKey(t *testing.T) {
	// Hand-build a CBOR map with a duplicated key 1, which the cbor
	// library's generic map marshaler would otherwise collapse.
	raw := []byte{
		0xa2,       // map(2)
		0x01, 0x26, // 1: -7
		0x01, 0x01, // 1: 1  (duplicate key)
	}

	_, err := ParseHeaders(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateHeader)
}

func TestParseHeaders_Malformed(t *testing.T) {
	_, err := ParseHeaders([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHeaderMalformed)
}
