package notion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
)

// Config holds the parsed configuration for a Notion source.
type Config struct {
	// PageIDs are the seed page ids to ingest.
	PageIDs []string

	// DatabaseIDs are the seed database ids to ingest.
	DatabaseIDs []string

	// Recursive enables crawling child pages and databases reachable
	// from the seeds. Default: false, only the seeds are ingested.
	Recursive bool
}

// ParseConfig parses a source's config map into a Config struct.
// At least one page or database id is required. Ids are accepted with
// or without dashes and normalised to canonical dashed form.
func ParseConfig(source domain.Source) (*Config, error) {
	cfg := &Config{}

	if pages, ok := source.Config["page_ids"]; ok && pages != "" {
		ids, err := parseIDs(pages)
		if err != nil {
			return nil, err
		}
		cfg.PageIDs = ids
	}

	if databases, ok := source.Config["database_ids"]; ok && databases != "" {
		ids, err := parseIDs(databases)
		if err != nil {
			return nil, err
		}
		cfg.DatabaseIDs = ids
	}

	if recursive, ok := source.Config["recursive"]; ok {
		cfg.Recursive = strings.EqualFold(strings.TrimSpace(recursive), "true")
	}

	if len(cfg.PageIDs) == 0 && len(cfg.DatabaseIDs) == 0 {
		return nil, ErrConfigNoEntryPoints
	}

	return cfg, nil
}

// parseIDs parses a comma-separated id list, canonicalising each entry.
func parseIDs(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrConfigInvalidID, part)
		}
		ids = append(ids, id.String())
	}
	return ids, nil
}
