package commands

import (
	"errors"
	"log/slog"
	"os"

	"scraperindex/lib/configutil"
	"scraperindex/lib/dictionary"
	"scraperindex/lib/extract"
	"scraperindex/lib/scanner"
	"scraperindex/lib/searchindex"

	"dario.cat/mergo"
)

type DictionaryConfig struct {
	// list-style spell checker command, `aspell list` by default
	Command []string `json:"command"`
	// a word list file used instead of the command
	WordList    string   `json:"word_list"`
	CommonWords []string `json:"common_words"`
	// badger directory for saved verdicts, empty disables it
	Cache   string `json:"cache"`
	Preload bool   `json:"preload"`
	// defaults to true
	SeedFromDescriptions *bool `json:"seed_from_descriptions"`
}

func (c DictionaryConfig) Seed() bool {
	return c.SeedFromDescriptions == nil || *c.SeedFromDescriptions
}

type ScannerConfig struct {
	MinActiveLines int `json:"min_active_lines"`
}

type ExtractConfig struct {
	IgnoredHosts []string `json:"ignored_hosts"`
}

type Config struct {
	ReposDir     string                     `json:"repos_dir"`
	Descriptions string                     `json:"descriptions"`
	OutputDir    string                     `json:"output_dir"`
	Dictionary   DictionaryConfig           `json:"dictionary"`
	Scanner      ScannerConfig              `json:"scanner"`
	Extract      ExtractConfig              `json:"extract"`
	Index        searchindex.DatabaseConfig `json:"index"`
	// where http exchanges are dumped with --verbose
	HttpDump string `json:"http_dump"`
}

func DefaultConfig() Config {
	return Config{
		ReposDir:     "repos",
		Descriptions: "descriptions.json",
		OutputDir:    "output",
		Dictionary: DictionaryConfig{
			Command: dictionary.DefaultCommand,
		},
		Scanner: ScannerConfig{
			MinActiveLines: scanner.DefaultMinActiveLines,
		},
		Extract: ExtractConfig{
			IgnoredHosts: extract.DefaultIgnoredHosts,
		},
		HttpDump: "<dev_state>/resty/descriptions",
	}
}

// WithDefaults fills every unset value from DefaultConfig.
func (c Config) WithDefaults() (Config, error) {
	err := mergo.Merge(&c, DefaultConfig())
	return c, err
}

// LoadConfig reads path and its .local override. A missing file gives the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		err = nil
	}
	if err != nil {
		return Config{}, err
	}
	return cfg.WithDefaults()
}
