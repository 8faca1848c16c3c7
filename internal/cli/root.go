// Package cli implements the botadmin CLI commands.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gochat247/botadmin/internal/config"
	"github.com/gochat247/botadmin/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "botadmin",
	Short: "Admin console for the bots database",
	Long:  "Manage bots, knowledge-base documents, and the links between them. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $BOTADMIN_DB or config file)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: $BOTADMIN_CONFIG or ./botadmin.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or table")
}

func loadConfig() *config.Config {
	if configPath != "" {
		cfg, _, err := config.LoadFromPath(configPath)
		if err != nil {
			exitErr("load config", err)
		}
		return cfg
	}
	cfg, _, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	return cfg
}

func getDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("BOTADMIN_DB"); env != "" {
		return env
	}
	return cfg.Database.Path
}

func openStore() (*store.Store, error) {
	cfg := loadConfig()
	return store.New(getDBPath(cfg), cfg.CacheTTL())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// parseIDList parses a comma-separated list of numeric keys.
func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
