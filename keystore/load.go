package keystore

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/sirupsen/logrus"
)

// LoadFromFile reads a keystore JSON document from a local filesystem
// path.
func LoadFromFile(path string) (*KeyStore, error) {
	logrus.WithField("path", path).Debug("keystore: loading from file")

	f, err := os.Open(path)
	if err != nil {
		return nil, wrap(FileError, err)
	}
	defer f.Close()

	return fromReader(f)
}

// LoadFromURL performs a blocking GET against rawURL with the default
// user agent and no authentication, and parses the response body as a
// keystore JSON document.
func LoadFromURL(rawURL string) (*KeyStore, error) {
	logrus.WithField("url", rawURL).Debug("keystore: loading from URL")

	resp, err := http.Get(rawURL)
	if err != nil {
		return nil, wrap(DownloadError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, wrap(DownloadError, fmt.Errorf("unexpected HTTP status: %s", resp.Status))
	}

	return fromReader(resp.Body)
}

// Load loads a keystore from either a local path or an HTTP(S) URL,
// dispatching on whether source parses as a URL with a scheme.
func Load(source string) (*KeyStore, error) {
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return LoadFromURL(source)
	}
	return LoadFromFile(source)
}

func fromReader(r io.Reader) (*KeyStore, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, wrap(ParsingError, err)
	}
	return fromRaw(raw), nil
}
