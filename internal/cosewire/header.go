package cosewire

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// ErrDuplicateHeader is the sentinel cause for a protected or unprotected
// header map containing the same key twice.
var ErrDuplicateHeader = errors.New("cosewire: duplicate header key")

// ErrHeaderMalformed is the sentinel cause for any other header decode
// failure.
var ErrHeaderMalformed = errors.New("cosewire: malformed header")

// Headers is the subset of RFC 8152 §3.1 generic headers this profile
// recognizes. All fields are optional at the parse layer; mandatoriness
// (e.g. kid) is enforced by the verifier, not here.
type Headers struct {
	Alg         *int64  `cbor:"1,keyasint,omitempty"`
	Crit        []int64 `cbor:"2,keyasint,omitempty"`
	ContentType *int64  `cbor:"3,keyasint,omitempty"`
	Kid         []byte  `cbor:"4,keyasint,omitempty"`
	IV          []byte  `cbor:"5,keyasint,omitempty"`
	PartialIV   []byte  `cbor:"6,keyasint,omitempty"`
}

var (
	headerDecMode     cbor.DecMode
	headerDecModeOnce sync.Once
)

func decMode() cbor.DecMode {
	headerDecModeOnce.Do(func() {
		m, err := cbor.DecOptions{
			DupMapKey: cbor.DupMapKeyEnforcedAPF,
		}.DecMode()
		if err != nil {
			panic(err)
		}
		headerDecMode = m
	})
	return headerDecMode
}

// ParseHeaders parses a protected or unprotected header map. An empty
// slice (no header bytes present) yields the zero Headers with no error,
// matching the optionality of the protected header bstr.
func ParseHeaders(data []byte) (Headers, error) {
	var h Headers
	if len(data) == 0 {
		return h, nil
	}

	if err := decMode().Unmarshal(data, &h); err != nil {
		if isDuplicateKeyError(err) {
			return Headers{}, errors.Wrap(ErrDuplicateHeader, err.Error())
		}
		return Headers{}, errors.Wrap(ErrHeaderMalformed, err.Error())
	}

	return h, nil
}

func isDuplicateKeyError(err error) bool {
	_, ok := err.(*cbor.DupMapKeyError)
	return ok
}
