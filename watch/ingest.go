package watch

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Notifier receives short operator-facing status strings. A nil Notifier
// discards them.
type Notifier func(string)

// StatusLog is a Notifier sink that accumulates messages for later
// display, e.g. through the status endpoint.
type StatusLog struct {
	mu   sync.Mutex
	msgs []string
}

func (s *StatusLog) Add(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *StatusLog) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Loader runs the three ingestion pipelines and writes their results into
// the store. Pipelines are independent: a failed or missing document
// empties that source only and is reported through the notifier, never by
// aborting the others.
type Loader struct {
	Fetcher Fetcher
	Store   *Store
	Paths   SourcePaths
	Notify  Notifier
	Log     zerolog.Logger
}

// LoadAll ingests the three sources concurrently and blocks until every
// pipeline has finished or failed.
func (l *Loader) LoadAll(ctx context.Context) {
	l.notify("Cargando listas...")
	var g errgroup.Group
	g.Go(func() error { l.loadONU(ctx); return nil })
	g.Go(func() error { l.loadOFAC(ctx); return nil })
	g.Go(func() error { l.loadEU(ctx); return nil })
	_ = g.Wait()
	if total := l.Store.Total(); total > 0 {
		l.notify(fmt.Sprintf("Listas cargadas: %d registros totales", total))
	} else {
		l.notify("No se cargaron archivos de datos")
	}
}

func (l *Loader) loadONU(ctx context.Context) {
	raw, err := l.Fetcher.Fetch(ctx, l.Paths.ONU)
	if err != nil {
		l.Log.Warn().Err(err).Str("source", string(SourceONU)).Msg("fetch failed")
		l.notify("ONU: archivo no encontrado")
		return
	}
	items, fellBack := IngestONU(raw)
	l.Store.SetRecords(SourceONU, items)
	l.Log.Info().Str("source", string(SourceONU)).Int("records", len(items)).Bool("fallback", fellBack).Msg("source loaded")
	if fellBack && len(items) == 0 {
		l.notify("Error: ONU no pudo procesarse")
	}
}

func (l *Loader) loadOFAC(ctx context.Context) {
	raw, err := l.Fetcher.Fetch(ctx, l.Paths.OFAC)
	if err != nil {
		l.Log.Warn().Err(err).Str("source", string(SourceOFAC)).Msg("fetch failed")
		l.notify("OFAC: archivo no encontrado")
		return
	}
	items, err := IngestOFAC(raw)
	if err != nil {
		// Parse failures stay inside the source boundary: the source
		// yields an empty list and a status notice.
		l.Log.Warn().Err(err).Str("source", string(SourceOFAC)).Msg("parse failed")
		l.Store.SetRecords(SourceOFAC, nil)
		l.notify("Error parseando OFAC CSV")
		return
	}
	l.Store.SetRecords(SourceOFAC, items)
	l.Log.Info().Str("source", string(SourceOFAC)).Int("records", len(items)).Msg("source loaded")
}

func (l *Loader) loadEU(ctx context.Context) {
	raw, err := l.Fetcher.Fetch(ctx, l.Paths.EUXML)
	if err == nil {
		items, fellBack := IngestEU(raw)
		l.Store.SetRecords(SourceUE, items)
		l.Log.Info().Str("source", string(SourceUE)).Int("records", len(items)).Bool("fallback", fellBack).Msg("source loaded")
		if fellBack && len(items) == 0 {
			l.notify("Error: UE no pudo procesarse")
		}
		return
	}
	// XML variant unavailable; try the delimited one.
	raw, err = l.Fetcher.Fetch(ctx, l.Paths.EUCSV)
	if err != nil {
		l.Log.Warn().Err(err).Str("source", string(SourceUE)).Msg("fetch failed")
		l.notify("UE: archivo no encontrado")
		return
	}
	items, err := IngestEUCSV(raw)
	if err != nil {
		l.Log.Warn().Err(err).Str("source", string(SourceUE)).Msg("parse failed")
		l.Store.SetRecords(SourceUE, nil)
		l.notify("Error parseando UE CSV")
		return
	}
	l.Store.SetRecords(SourceUE, items)
	l.Log.Info().Str("source", string(SourceUE)).Int("records", len(items)).Msg("source loaded")
}

func (l *Loader) notify(msg string) {
	if l.Notify != nil {
		l.Notify(msg)
	}
}
