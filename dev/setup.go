package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	devenv "scraperindex/dev/env"
	"scraperindex/lib/dictionary"
	"scraperindex/lib/searchindex"
)

const indexPath = "<dev_state>/search_index.db"

const localConfig = `{
  // overrides for scraperindex.json5, not checked in
  repos_dir: "repos",
  descriptions: "descriptions.json",
  output_dir: "<dev_state>/output",
  dictionary: {
    cache: "<dev_state>/verdicts",
  },
  index: {
    file: "<dev_state>/search_index.db",
  },
}
`

func CreateSearchIndex() error {
	path, err := devenv.ResolvePath(indexPath)
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("search index already created at", path)
		return nil
	}

	fmt.Println("creating search index at", path)
	db, err := searchindex.DatabaseConfig{File: indexPath}.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec(searchindex.Schema)
	return err
}

func CreateLocalConfig() error {
	_, err := os.Stat("scraperindex.local.json5")
	if err == nil {
		fmt.Println("scraperindex.local.json5 already exists")
		return nil
	}
	fmt.Println("writing scraperindex.local.json5")
	return os.WriteFile("scraperindex.local.json5", []byte(localConfig), 0644)
}

func CheckSpellChecker() {
	_, err := exec.LookPath(dictionary.DefaultCommand[0])
	if err != nil {
		slog.Warn(
			"aspell is not installed, set dictionary.word_list in scraperindex.local.json5 or install aspell with an english dictionary",
			"err", err,
		)
	}
}

