// Package download orchestrates the one-shot fetch of the region hierarchy
// and materializes it as a columnar dataset file.
package download

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/karasuda/resasdl/dataset"
	"github.com/karasuda/resasdl/filter"
	"github.com/karasuda/resasdl/resas"
)

// ErrNoRows is returned when a run produced no output rows, either because
// the API returned none or because the filter rejected every row.
var ErrNoRows = errors.New("no rows to write")

// RegionSource supplies the region hierarchy. *resas.Client satisfies it.
type RegionSource interface {
	Prefectures(ctx context.Context) ([]resas.Prefecture, error)
	Cities(ctx context.Context, prefCode int) ([]resas.City, error)
}

// Downloader fetches every prefecture and its municipalities and writes the
// flattened rows to a Parquet file.
type Downloader struct {
	source  RegionSource
	limiter *rate.Limiter
	filter  *filter.RowFilter
	logger  zerolog.Logger
}

// New creates a Downloader. interval spaces the per-prefecture city calls;
// zero disables pacing.
func New(source RegionSource, interval time.Duration, logger zerolog.Logger) *Downloader {
	return &Downloader{
		source:  source,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

// SetFilter installs a row filter applied before writing. A nil filter keeps
// every row.
func (d *Downloader) SetFilter(f *filter.RowFilter) {
	d.filter = f
}

// Run fetches the full hierarchy and writes it to outputPath. Any fetch,
// filter, or write failure aborts the run; there is no partial output.
func (d *Downloader) Run(ctx context.Context, outputPath string) error {
	prefs, err := d.source.Prefectures(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch prefectures: %w", err)
	}

	d.logger.Info().
		Int("count", len(prefs)).
		Msg("Fetched prefecture catalogue")

	var rows []dataset.CityRow
	for _, pref := range prefs {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}

		cities, err := d.source.Cities(ctx, pref.PrefCode)
		if err != nil {
			return fmt.Errorf("failed to fetch cities for %s: %w", pref.PrefName, err)
		}

		kept := 0
		for _, city := range cities {
			row := dataset.NewCityRow(pref, city)
			if d.filter != nil {
				keep, err := d.filter.Evaluate(row)
				if err != nil {
					return err
				}
				if !keep {
					continue
				}
			}
			rows = append(rows, row)
			kept++
		}

		d.logger.Info().
			Int("pref_code", pref.PrefCode).
			Str("prefecture", pref.PrefName).
			Int("cities", len(cities)).
			Int("kept", kept).
			Msg("Fetched prefecture")
	}

	if len(rows) == 0 {
		return ErrNoRows
	}

	if err := dataset.WriteFile(outputPath, rows); err != nil {
		return err
	}

	d.logger.Info().
		Int("rows", len(rows)).
		Str("path", outputPath).
		Msg("Saved dataset")

	return nil
}
