package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ldc/internal/diag"
	"ldc/internal/source"
)

// FileResult is the outcome for one file of a batch check.
type FileResult struct {
	Path   string
	Bag    *diag.Bag
	Check  *CheckResult // nil when the result was replayed from cache
	Cached bool
}

// CheckManyOptions tunes a batch run.
type CheckManyOptions struct {
	MaxDiagnostics int
	// Jobs limits worker parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, is consulted by content hash before checking
	// and updated after.
	Cache  *DiskCache
	Events EventSink
}

// ListSourceFiles returns the sorted list of .ld files under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ld") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckMany checks a set of files concurrently. Files are preloaded into a
// shared FileSet serially; workers then only read from it. Results keep the
// order of paths.
func CheckMany(ctx context.Context, paths []string, opts CheckManyOptions) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error, len(paths))

	for _, path := range paths {
		opts.Events.emit(Event{Path: path, Stage: StageLex, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.UnknownCode,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: path, Bag: bag}
				opts.Events.emit(Event{Path: path, Stage: StageLex, Status: StatusError, Errors: 1})
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			if opts.Cache != nil {
				var payload DiskPayload
				hit, err := opts.Cache.Get(file.Hash, &payload)
				if err == nil && hit {
					bag := payloadToBag(&payload, fileID, opts.MaxDiagnostics)
					results[i] = FileResult{Path: path, Bag: bag, Cached: true}
					opts.Events.emit(Event{
						Path:   path,
						Stage:  StageCheck,
						Status: StatusCached,
						Errors: countErrors(bag),
					})
					return nil
				}
			}

			opts.Events.emit(Event{Path: path, Stage: StageParse, Status: StatusWorking})
			checked, err := checkLoaded(fileSet, fileID, opts.MaxDiagnostics)
			if err != nil {
				return err
			}
			opts.Events.emit(Event{Path: path, Stage: StageCheck, Status: StatusWorking})

			results[i] = FileResult{Path: path, Bag: checked.Bag, Check: checked}

			if opts.Cache != nil {
				// Cache write failures never fail the check itself.
				_ = opts.Cache.Put(file.Hash, bagToPayload(path, checked.Bag))
			}

			status := StatusDone
			if checked.Bag.HasErrors() {
				status = StatusError
			}
			opts.Events.emit(Event{
				Path:   path,
				Stage:  StageCheck,
				Status: status,
				Errors: countErrors(checked.Bag),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
