package main

import "github.com/kelseyhightower/envconfig"

// config holds defaults overridable by environment variables, layered
// under whatever the user passes explicitly on the command line.
// Grounded on Jointeg-ubirch-cose-client-go/main/config.go's use of
// envconfig for service defaults.
type config struct {
	// Keystore is the default --keystore value (path or URL) when the
	// flag is not given.
	Keystore string `envconfig:"DGC_KEYSTORE"`

	// LogFormat selects "text" (default) or "json" log output.
	LogFormat string `envconfig:"DGC_LOG_FORMAT" default:"text"`
}

func loadConfig() (*config, error) {
	var c config
	if err := envconfig.Process("dgc", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
