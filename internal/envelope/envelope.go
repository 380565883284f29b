// Package envelope implements the text-envelope to binary transformation
// chain for EU Digital Green Certificates: split the version prefix,
// Base45-decode the body, and inflate the zlib stream underneath.
package envelope

import (
	"bytes"
	"compress/zlib"
	"io"
	"strings"

	"github.com/minvws/base45-go/eubase45"
	"github.com/pkg/errors"
)

// MaxInflatedSize bounds the memory a single certificate's inflated COSE
// bytes may occupy. Not mandated by the wire format, but a safe upper bound
// given real DGC payloads are a few hundred bytes.
const MaxInflatedSize = 64 * 1024

// Sentinel causes, distinguished from one another so callers can classify
// without inspecting message text.
var (
	ErrUnknownVersion = errors.New("envelope: unsupported version prefix")
	ErrBase45         = errors.New("envelope: invalid base45 data")
	ErrInflate        = errors.New("envelope: zlib inflate failed")
	ErrTooLarge       = errors.New("envelope: inflated payload exceeds size cap")
)

// version is the only 2D code version this profile accepts.
const version = "HC1"

// Decode splits the HC1: prefix from text, Base45-decodes the remainder,
// and inflates the resulting zlib stream, returning the raw COSE bytes.
func Decode(text string) ([]byte, error) {
	prefix, body, ok := strings.Cut(text, ":")
	if !ok || prefix != version {
		return nil, errors.WithMessagef(ErrUnknownVersion, "got prefix %q", prefix)
	}

	compressed, err := eubase45.EUBase45Decode([]byte(body))
	if err != nil {
		return nil, errors.Wrap(ErrBase45, err.Error())
	}

	return inflate(compressed)
}

func inflate(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, errors.Wrap(ErrInflate, err.Error())
	}
	defer zr.Close()

	limited := io.LimitReader(zr, MaxInflatedSize+1)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, limited); err != nil {
		return nil, errors.Wrap(ErrInflate, err.Error())
	}
	if err := zr.Close(); err != nil {
		return nil, errors.Wrap(ErrInflate, err.Error())
	}

	if buf.Len() > MaxInflatedSize {
		return nil, ErrTooLarge
	}

	return buf.Bytes(), nil
}
