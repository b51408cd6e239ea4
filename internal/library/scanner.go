package library

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/album-catalog/internal/audio"
	"github.com/handiism/album-catalog/internal/model"
)

// albumDepth is the depth of album folders below the library root:
// root/band/album.
const albumDepth = 2

// AlbumFolder is an album folder found while walking the library.
type AlbumFolder struct {
	Path string
	Band string
	Year string
	Name string
}

// ProgressFunc is called once per aggregated album with the number of albums
// done so far and the total number of album folders. With more than one
// worker it is called from several goroutines.
type ProgressFunc func(done, total int, record model.AlbumRecord)

// Scanner walks a library and builds its catalog.
type Scanner struct {
	aggregator *audio.Aggregator
	workers    int
	logger     *zap.Logger
	onProgress ProgressFunc
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers sets how many albums are aggregated concurrently. Values
// below one mean one.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Scanner) {
		s.onProgress = fn
	}
}

// NewScanner creates a Scanner that aggregates albums with aggregator.
func NewScanner(aggregator *audio.Aggregator, opts ...Option) *Scanner {
	s := &Scanner{
		aggregator: aggregator,
		workers:    1,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover walks root and returns its album folders in walk order.
//
// An album folder is a directory exactly two levels below root whose name
// contains a "-"; other directories at that depth are skipped. Entries
// that cannot be read are skipped too. Only a failure to read root itself
// is reported.
func (s *Scanner) Discover(root string) ([]AlbumFolder, error) {
	var folders []AlbumFolder

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		depth := depthOf(root, path)
		if depth < albumDepth {
			return nil
		}

		year, name, ok := model.ParseAlbumFolder(d.Name())
		if ok {
			folders = append(folders, AlbumFolder{
				Path: path,
				Band: model.NormalizeName(filepath.Base(filepath.Dir(path))),
				Year: year,
				Name: name,
			})
		} else {
			s.logger.Debug("skipping folder without year separator", zap.String("path", path))
		}
		// Disc folders inside an album are handled by the aggregator.
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("walk library %s: %w", root, err)
	}

	return folders, nil
}

// Scan discovers every album under root and aggregates it into a catalog.
//
// Albums may be aggregated concurrently, but records are added to the
// catalog in discovery order, so the result does not depend on the number
// of workers.
func (s *Scanner) Scan(ctx context.Context, root string) (*model.Catalog, error) {
	folders, err := s.Discover(root)
	if err != nil {
		return nil, err
	}

	records, err := s.aggregate(ctx, folders)
	if err != nil {
		return nil, err
	}

	catalog := model.NewCatalog()
	for _, record := range records {
		catalog.Add(record)
	}
	return catalog, nil
}

// aggregate computes the record of every folder. The returned records are
// in the same order as folders.
func (s *Scanner) aggregate(ctx context.Context, folders []AlbumFolder) ([]model.AlbumRecord, error) {
	records := make([]model.AlbumRecord, len(folders))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, folder := range folders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			bitrate, genre := s.aggregator.Album(folder.Path)
			records[i] = model.AlbumRecord{
				Band:    folder.Band,
				Year:    folder.Year,
				Name:    folder.Name,
				Bitrate: bitrate,
				Genre:   genre,
			}
			s.logger.Debug("aggregated album",
				zap.String("band", folder.Band),
				zap.String("album", folder.Name),
				zap.String("bitrate", bitrate),
				zap.String("genre", genre))

			if s.onProgress != nil {
				s.onProgress(int(done.Add(1)), len(folders), records[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// depthOf returns how many path elements path is below root.
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
