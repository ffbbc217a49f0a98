package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var requiredMetadata = []string{
	"generated_at",
	"repos_analyzed",
	"trivial_scrapers_skipped",
	"broken_scrapers_found",
	"no_scraper_file",
}

func readNonEmpty(path string) ([]byte, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("output file %s: %w", path, err)
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("output file %s has no content", path)
	}
	return contents, nil
}

// Validate checks the files written into dir by ScriptWriter and
// ResultsWriter. Every problem found is returned, joined.
func Validate(dir string) error {
	var problems []error

	script, err := readNonEmpty(filepath.Join(dir, ScriptFile))
	if err != nil {
		problems = append(problems, err)
	} else {
		problems = append(problems, validateScript(script)...)
	}

	results, err := readNonEmpty(filepath.Join(dir, ResultsFile))
	if err != nil {
		problems = append(problems, err)
	} else {
		problems = append(problems, validateResults(results)...)
	}

	return errors.Join(problems...)
}

func validateScript(contents []byte) []error {
	var content map[string]json.RawMessage
	err := json.Unmarshal(contents, &content)
	if err != nil {
		return []error{fmt.Errorf("%s is not a json object: %w", ScriptFile, err)}
	}

	var problems []error
	for _, key := range []string{"scraperDateTime", "scraperData", "ignoreWords"} {
		if _, ok := content[key]; !ok {
			problems = append(problems, fmt.Errorf("%s: missing %s", ScriptFile, key))
		}
	}
	if len(problems) > 0 {
		return problems
	}

	var generatedAt string
	err = json.Unmarshal(content["scraperDateTime"], &generatedAt)
	if err != nil {
		problems = append(problems, fmt.Errorf("%s: scraperDateTime should be a string", ScriptFile))
	} else if _, err := time.Parse(time.RFC3339, generatedAt); err != nil {
		problems = append(problems, fmt.Errorf("%s: scraperDateTime %q is not a date: %w", ScriptFile, generatedAt, err))
	}

	var data map[string]map[string]any
	err = json.Unmarshal(content["scraperData"], &data)
	if err != nil {
		problems = append(problems, fmt.Errorf("%s: scraperData should map names to objects: %w", ScriptFile, err))
	}

	var words []any
	err = json.Unmarshal(content["ignoreWords"], &words)
	if err != nil {
		problems = append(problems, fmt.Errorf("%s: ignoreWords should be an array", ScriptFile))
	}
	for i, w := range words {
		word, ok := w.(string)
		if !ok {
			problems = append(problems, fmt.Errorf("%s: ignoreWords[%d] should be a string, is: %v", ScriptFile, i, w))
			continue
		}
		if !ignoreWordRegex.MatchString(word) {
			problems = append(problems, fmt.Errorf("%s: ignoreWords[%d] should be lowercase alphanumeric, is: %q", ScriptFile, i, word))
		}
	}
	return problems
}

func validateResults(contents []byte) []error {
	var content struct {
		Metadata    map[string]any `yaml:"metadata"`
		ActiveRepos map[string]any `yaml:"active_repos"`
	}
	err := yaml.Unmarshal(contents, &content)
	if err != nil {
		return []error{fmt.Errorf("%s is not valid yaml: %w", ResultsFile, err)}
	}

	var problems []error
	if content.Metadata == nil {
		return []error{fmt.Errorf("%s: missing metadata", ResultsFile)}
	}
	for _, key := range requiredMetadata {
		if _, ok := content.Metadata[key]; !ok {
			problems = append(problems, fmt.Errorf("%s: missing metadata key %s", ResultsFile, key))
		}
	}
	if content.ActiveRepos == nil {
		problems = append(problems, fmt.Errorf("%s: missing active_repos", ResultsFile))
	}
	return problems
}
