package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ImageScanner extracts QR code text payloads from an image. It is an
// external collaborator (spec.md §1): the 2D barcode scanner itself is
// out of scope for this repository, and no Go QR-decoding library is
// available in the stack this project was built from (see DESIGN.md).
// The interface exists so a real scanner can be plugged in without
// touching the decode/verify pipeline.
type ImageScanner interface {
	ScanQRCodes(path string) ([]string, error)
}

var errImageScanningUnavailable = errors.New("image scanning is not wired into this build; pass an HC1 text payload or a file containing one")

// unavailableScanner is the default ImageScanner: it always fails,
// explicitly, rather than silently treating image bytes as text.
type unavailableScanner struct{}

func (unavailableScanner) ScanQRCodes(string) ([]string, error) {
	return nil, errImageScanningUnavailable
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".bmp": true, ".gif": true, ".tiff": true,
}

// resolvePayloads turns a CLI positional argument into one or more HC1
// text payloads: a literal HC1 string, the contents of a text file (one
// payload per non-empty line), or the output of scanner for image files.
func resolvePayloads(arg string, scanner ImageScanner) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		// Not a file: treat the argument itself as the payload.
		return []string{arg}, nil
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", arg)
	}

	if imageExtensions[strings.ToLower(filepath.Ext(arg))] {
		return scanner.ScanQRCodes(arg)
	}

	raw, err := os.ReadFile(arg)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", arg)
	}

	var payloads []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			payloads = append(payloads, line)
		}
	}
	return payloads, nil
}
