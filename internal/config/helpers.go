package config

import (
	"pricetrack-api/pkg/ingest"
)

// MustLoadIngest loads etc/ingest.yaml from the project root and panics on error.
// cmd/ingest falls back to it when the app config has no ingest section.
func MustLoadIngest() *ingest.Config {
	return ingest.MustLoad()
}
