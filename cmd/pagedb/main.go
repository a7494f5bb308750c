// Command pagedb is the CLI entry point for the embedded fixed-width
// paged row store: it loads a schema file, opens its tables, and runs
// an interactive REPL against them. Grounded on JuniperBible's
// cmd/juniper/main.go for the kong.Parse/config.Load wiring pattern.
package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/dbconfig"
	"github.com/askorykh/pagedb/internal/dblog"
	"github.com/askorykh/pagedb/internal/repl"
)

// CLI is the command-line interface, parsed by kong.
var CLI struct {
	Schema  string `arg:"" help:"Path to the schema file describing the database's tables."`
	DataDir string `name:"data-dir" help:"Override the config file's data directory."`
	Config  string `name:"config" help:"Path to an optional pagedb.yaml config file (default: pagedb.yaml next to the schema file)."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("pagedb"),
		kong.Description("Embedded fixed-width paged row store with a SQL-subset REPL."),
		kong.UsageOnError(),
	)

	configPath := CLI.Config
	if configPath == "" {
		configPath = filepath.Join(filepath.Dir(CLI.Schema), "pagedb.yaml")
	}

	cfg, err := dbconfig.Load(configPath)
	if err != nil {
		dblog.Logger.WithError(err).Fatal("failed to load config")
	}

	if CLI.DataDir != "" {
		cfg.DataDir = CLI.DataDir
	}

	if err := dblog.Init(cfg.LogLevel); err != nil {
		dblog.Logger.WithError(err).Warn("invalid log level, keeping default")
	}

	schema, err := catalog.Open(CLI.Schema, cfg.DataDir)
	if err != nil {
		dblog.Logger.WithError(err).Fatal("failed to open database")
	}

	driver := repl.New(schema, os.Stdin, os.Stdout)
	os.Exit(driver.Run())
}
