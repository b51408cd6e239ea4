package reconcile

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/audio"
	"github.com/handiism/album-catalog/internal/config"
	"github.com/handiism/album-catalog/internal/library"
	"github.com/handiism/album-catalog/internal/model"
	"github.com/handiism/album-catalog/internal/probecache"
	"github.com/handiism/album-catalog/internal/spreadsheet"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a scan or write progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Result describes a finished run.
type Result struct {
	// Discovered is the number of album folders found in the library.
	Discovered int
	// Written is the number of album rows added to the spreadsheet.
	Written    int
	FileName   string
	Insertions []spreadsheet.Insertion
	// DryRun is set when the spreadsheet was modified in memory only.
	DryRun bool
}

// Summary returns the one-line outcome printed at the end of a run.
func (r *Result) Summary() string {
	if r.Discovered == 0 {
		return "No albums found, nothing to do."
	}
	return fmt.Sprintf("Successfully added %d/%d albums to the spreadsheet '%s'", r.Written, r.Discovered, r.FileName)
}

// Manager coordinates a catalog run: scan the library, then insert the
// albums into the spreadsheet.
type Manager struct {
	settings *config.Settings
	logger   *zap.Logger
	prober   audio.Prober
	cache    *probecache.Cache

	catalog       *model.Catalog
	totalAlbums   int32
	scannedAlbums int32
	writtenAlbums int32

	onProgress func(ProgressEvent)
	progressMu sync.Mutex
	mu         sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithProber replaces the file prober. The probe cache, if configured,
// still sits in front of it.
func WithProber(prober audio.Prober) Option {
	return func(m *Manager) {
		m.prober = prober
	}
}

// NewManager creates a new Manager. When settings name a cache path the
// probe cache is opened here and released by Close.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) (*Manager, error) {
	m := &Manager{
		settings:   settings,
		logger:     zap.NewNop(),
		prober:     audio.NewFileProber(),
		onProgress: onProgress,
	}
	for _, opt := range opts {
		opt(m)
	}

	if settings.CachePath != "" {
		cache, err := probecache.Open(settings.CachePath, m.prober, m.logger)
		if err != nil {
			return nil, fmt.Errorf("open probe cache: %w", err)
		}
		m.cache = cache
		m.prober = cache
	}

	return m, nil
}

// Close releases the probe cache.
func (m *Manager) Close() error {
	if m.cache == nil {
		return nil
	}
	stats := m.cache.Stats()
	m.logger.Debug("probe cache statistics", zap.Int64("hits", stats.Hits), zap.Int64("misses", stats.Misses))
	return m.cache.Close()
}

// Scan walks the data folder and builds the catalog.
func (m *Manager) Scan(ctx context.Context) (*model.Catalog, error) {
	aggregator := audio.NewAggregator(m.settings.Extensions, m.prober, m.logger)
	scanner := library.NewScanner(aggregator,
		library.WithWorkers(m.settings.Workers),
		library.WithLogger(m.logger),
		library.WithProgress(m.albumScanned),
	)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", m.settings.DataFolder), Level: LevelInfo})

	atomic.StoreInt32(&m.totalAlbums, 0)
	atomic.StoreInt32(&m.scannedAlbums, 0)

	catalog, err := scanner.Scan(ctx, m.settings.DataFolder)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.catalog = catalog
	m.mu.Unlock()

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d albums from %d bands", catalog.Len(), catalog.BandCount()),
		Level:   LevelInfo,
	})
	return catalog, nil
}

// Apply inserts the catalog built by Scan into the spreadsheet. With dryRun
// the workbook is modified in memory and never saved. When the catalog is
// empty the spreadsheet is not opened at all.
func (m *Manager) Apply(ctx context.Context, dryRun bool) (*Result, error) {
	catalog := m.Catalog()
	sheet := m.settings.Spreadsheet
	result := &Result{FileName: sheet.FileName, DryRun: dryRun}
	if catalog == nil || catalog.Len() == 0 {
		m.progress(ProgressEvent{Message: result.Summary(), Level: LevelInfo})
		return result, nil
	}
	result.Discovered = catalog.Len()

	wb, err := spreadsheet.Open(sheet.FileName, sheet.Sheet, spreadsheet.WithWorkbookLogger(m.logger))
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	report, err := spreadsheet.Sync(ctx, wb, catalog, spreadsheet.Layout{
		FirstColumn: sheet.FirstColumn,
		FirstRow:    sheet.FirstRow,
		Highlight:   sheet.HighlightColor,
	},
		spreadsheet.WithSyncLogger(m.logger),
		spreadsheet.WithInsertHook(m.bandWritten),
	)
	if err != nil {
		return nil, err
	}
	result.Written = report.Written
	result.Insertions = report.Insertions

	if dryRun {
		m.progress(ProgressEvent{Message: "Dry run, spreadsheet not saved", Level: LevelWarning})
		return result, nil
	}

	if err := wb.Save(ctx, sheet.Backup); err != nil {
		return nil, err
	}
	m.progress(ProgressEvent{Message: result.Summary(), Level: LevelSuccess})
	return result, nil
}

// Run scans the library and applies the catalog.
func (m *Manager) Run(ctx context.Context, dryRun bool) (*Result, error) {
	if _, err := m.Scan(ctx); err != nil {
		return nil, err
	}
	return m.Apply(ctx, dryRun)
}

// Catalog returns the catalog built by the last Scan, or nil.
func (m *Manager) Catalog() *model.Catalog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog
}

// GetProgress returns current scan and write progress.
func (m *Manager) GetProgress() (scanned, total, written int32) {
	return atomic.LoadInt32(&m.scannedAlbums), atomic.LoadInt32(&m.totalAlbums),
		atomic.LoadInt32(&m.writtenAlbums)
}

func (m *Manager) albumScanned(done, total int, record model.AlbumRecord) {
	atomic.StoreInt32(&m.totalAlbums, int32(total))
	atomic.AddInt32(&m.scannedAlbums, 1)

	level := LevelVerbose
	if record.Bitrate == audio.Unknown || record.Genre == audio.Unknown {
		level = LevelWarning
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Scanned %s - %s (%s, %s)", record.Band, record.Name, orDash(record.Bitrate), orDash(record.Genre)),
		Level:   level,
	})
}

func (m *Manager) bandWritten(insertion spreadsheet.Insertion) {
	atomic.AddInt32(&m.writtenAlbums, int32(insertion.Rows()))
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Added %d album(s) of %s after row %d", insertion.Rows(), insertion.Band, insertion.After),
		Level:   LevelVerbose,
	})
}

// progress serializes callbacks, since scan workers report concurrently.
func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.progressMu.Lock()
	defer m.progressMu.Unlock()
	m.onProgress(event)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
