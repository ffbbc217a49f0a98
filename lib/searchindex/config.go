package searchindex

import (
	"database/sql"
	"fmt"
	"net/url"

	devenv "scraperindex/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// DatabaseConfig points at either a local sqlite file or a remote libsql
// database.
type DatabaseConfig struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (c DatabaseConfig) Enabled() bool {
	return c.File != "" || c.Url != ""
}

func (c DatabaseConfig) OpenDB() (*sql.DB, error) {
	if c.Url == "" {
		if c.File == "" {
			return nil, fmt.Errorf("neither a database file nor url was specified")
		}
		dbpath, err := devenv.ResolvePath(c.File)
		if err != nil {
			return nil, err
		}
		return sql.Open("libsql", fmt.Sprintf("file:%s", dbpath))
	}

	values := url.Values{}
	if c.AuthToken != "" {
		values.Add("authToken", c.AuthToken)
	}
	return sql.Open("libsql", c.Url+"?"+values.Encode())
}
