// Package factory constructs the datastore stack from configuration.
package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutridash/nutridash-server/internal/config"
	"github.com/nutridash/nutridash-server/internal/sheets"
	"github.com/nutridash/nutridash-server/internal/store"
	"github.com/nutridash/nutridash-server/internal/store/cached"
	"github.com/nutridash/nutridash-server/internal/store/sheetstore"
	"github.com/nutridash/nutridash-server/internal/store/sqlitestore"
)

// NewStore builds the store for the configured driver and wraps it in the
// read cache. The sheets driver talks to the remote spreadsheet; the sqlite
// driver is the local development backend.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	var inner store.Store

	switch cfg.StoreDriver {
	case "sheets":
		client, err := sheets.NewClient(ctx, cfg.SpreadsheetID, cfg.CredentialsFile, cfg.RemoteTimeout(), cfg.RemoteRetries)
		if err != nil {
			return nil, fmt.Errorf("sheets client: %w", err)
		}
		inner = sheetstore.New(client)
		log.Info().Str("driver", "sheets").Msg("Store initialized")
	case "sqlite":
		st, err := sqlitestore.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		inner = st
		log.Info().Str("driver", "sqlite").Str("path", cfg.SQLitePath).Msg("Store initialized")
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}

	if cfg.CacheTTLSeconds > 0 {
		return cached.New(inner, time.Duration(cfg.CacheTTLSeconds)*time.Second), nil
	}
	return inner, nil
}
