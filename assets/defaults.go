package assets

import (
	_ "embed"
)

// DefaultConfig contains the embedded default configuration. It is parsed
// when no config file exists and written verbatim by "config init".
//
//go:embed defaults/config.yaml
var DefaultConfig []byte
