package watch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourcePaths names the documents fetched for each list. The EU list has
// an XML document and a delimited fallback variant.
type SourcePaths struct {
	ONU   string `yaml:"onu"`
	OFAC  string `yaml:"ofac"`
	EUXML string `yaml:"eu_xml"`
	EUCSV string `yaml:"eu_csv"`
}

// Config locates the source documents and the serving address. Documents
// come from a local data directory unless a base URL is set.
type Config struct {
	DataDir string      `yaml:"data_dir"`
	BaseURL string      `yaml:"base_url"`
	Listen  string      `yaml:"listen"`
	Sources SourcePaths `yaml:"sources"`
}

// DefaultConfig mirrors the layout of the published data drop.
func DefaultConfig() Config {
	return Config{
		DataDir: "data",
		Listen:  ":3000",
		Sources: SourcePaths{
			ONU:   "consolidated.xml",
			OFAC:  "OFAC.csv",
			EUXML: "eu_sanctions.xml",
			EUCSV: "eu_sanctions.csv",
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns
// the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Fetcher builds the document fetcher implied by the config: HTTP when a
// base URL is set, local files otherwise.
func (c Config) Fetcher() Fetcher {
	if c.BaseURL != "" {
		return HTTPFetcher{Base: c.BaseURL}
	}
	return FileFetcher{Base: c.DataDir}
}
