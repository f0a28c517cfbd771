package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhisek/vokabel/internal/catalog"
	"github.com/abhisek/vokabel/internal/session"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/vocab"
)

// deps is what most commands need: the opened store and a service over it.
type deps struct {
	store   *store.Store
	service *session.Service
}

func (d *deps) Close() error {
	return d.store.Close()
}

// openDeps loads the catalog, opens the store and wires the service.
func openDeps(ctx context.Context) (*deps, error) {
	levels := cfg.LevelList()
	index, err := vocab.BuildIndex(ctx, catalog.NewDir(cfg.Catalog.Dir), levels)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.WithField("items", index.Size(vocab.Scope{Name: vocab.MixScope, Levels: levels})).
		Debug("catalog loaded")

	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc := session.NewService(index, st.StatsRepo(), st.ReportRepo(), session.Options{
		Rules:       cfg.Rules(),
		Selection:   cfg.Selection(),
		Transitions: st.TransitionRepo(),
		Logger:      logger,
	})
	return &deps{store: st, service: svc}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
