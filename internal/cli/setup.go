package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notion-ingest/internal/config"
	"github.com/custodia-labs/notion-ingest/internal/connectors/notion"
	"github.com/custodia-labs/notion-ingest/internal/core/domain"
)

// sourceID names the single configured source. The CLI drives one
// workspace per config file.
const sourceID = "notion"

// staticTokenProvider serves a fixed integration token.
type staticTokenProvider struct {
	token string
}

func (p staticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrAuthRequired
	}
	return p.token, nil
}

func (p staticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}

// syncOptions are the flag values shared by sync and validate.
type syncOptions struct {
	token       string
	pageIDs     string
	databaseIDs string
	recursive   bool
	output      string
	dataDir     string
}

// resolve merges flag values over the config file and the NOTION_TOKEN
// environment variable. Precedence: flag, then environment, then file.
func (o *syncOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if o.token != "" {
		cfg.Token = o.token
	} else if env := os.Getenv("NOTION_TOKEN"); env != "" {
		cfg.Token = env
	}
	if o.pageIDs != "" {
		cfg.PageIDs = splitList(o.pageIDs)
	}
	if o.databaseIDs != "" {
		cfg.DatabaseIDs = splitList(o.databaseIDs)
	}
	if cmd.Flags().Changed("recursive") {
		cfg.Recursive = o.recursive
	}
	if o.output != "" {
		cfg.OutputDir = o.output
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "notion-export"
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}

	if cfg.Token == "" {
		return nil, errors.New("no integration token: set token in the config file, NOTION_TOKEN, or --token")
	}

	return cfg, nil
}

// buildConnector assembles the Notion connector from a resolved config.
func buildConnector(cfg *config.Config) (*notion.Connector, error) {
	source := domain.Source{
		ID:     sourceID,
		Type:   "notion",
		Config: cfg.SourceConfig(),
	}

	parsed, err := notion.ParseConfig(source)
	if err != nil {
		return nil, err
	}

	return notion.New(sourceID, parsed, staticTokenProvider{token: cfg.Token}), nil
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
