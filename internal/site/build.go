package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/theme"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrWriteOutput indicates a built file could not be written.
var ErrWriteOutput = errors.New("failed to write output")

// BuildResult holds the outcome of writing one document.
type BuildResult struct {
	Name       string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// buildJob renders one document.
type buildJob struct {
	name   string
	render func(ctx context.Context) ([]byte, error)
}

// Build writes every document of the site and its styles into outDir.
// Pages are rendered concurrently by workers goroutines; workers <= 0 sizes
// the pool with mdsite.ResolveWorkers. Results are in index, pages, gallery
// order. The returned error joins every failed result.
//
// A page that fails to load is not written.
func (s *Site) Build(ctx context.Context, outDir string, workers int) ([]BuildResult, error) {
	staticDir := filepath.Join(outDir, "static")
	if err := os.MkdirAll(staticDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err)
	}

	for _, name := range assets.Styles {
		css, err := s.Style(name)
		if err != nil {
			return nil, fmt.Errorf("loading style %q: %w", name, err)
		}
		path := filepath.Join(staticDir, name+".css")
		if err := fileutil.WriteFileAtomic(path, []byte(css), filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	jobs := s.buildJobs()
	results := runBuild(ctx, jobs, mdsite.ResolveWorkers(workers), func(ctx context.Context, job buildJob) BuildResult {
		return s.writeDocumentFile(ctx, outDir, job)
	})

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
			continue
		}
		s.logger.LogAttrs(ctx, slog.LevelDebug, "page written",
			slog.String("page", res.Name),
			slog.String("path", res.OutputPath),
			slog.Duration("duration", res.Duration))
	}
	return results, errors.Join(errs...)
}

func (s *Site) buildJobs() []buildJob {
	jobs := []buildJob{{
		name: IndexName,
		render: func(context.Context) ([]byte, error) {
			return s.RenderIndex(theme.System, true)
		},
	}}
	for _, p := range s.cfg.Pages {
		name := p.Name
		jobs = append(jobs, buildJob{
			name: name,
			render: func(ctx context.Context) ([]byte, error) {
				return s.RenderPage(ctx, name, theme.System, true)
			},
		})
	}
	return append(jobs, buildJob{
		name: GalleryName,
		render: func(context.Context) ([]byte, error) {
			return s.RenderGallery(theme.System, true)
		},
	})
}

func (s *Site) writeDocumentFile(ctx context.Context, outDir string, job buildJob) BuildResult {
	start := time.Now()
	res := BuildResult{Name: job.name}

	doc, err := job.render(ctx)
	if err == nil {
		res.OutputPath = filepath.Join(outDir, pageHref(job.name))
		if werr := fileutil.WriteFileAtomic(res.OutputPath, doc, filePermissions); werr != nil {
			err = fmt.Errorf("%w: %w", ErrWriteOutput, werr)
		}
	}
	res.Err = err
	res.Duration = time.Since(start)
	return res
}

// runBuild processes jobs with a bounded worker pool. Results are indexed
// like jobs. Jobs dequeued after ctx is done fail with ctx.Err().
func runBuild(ctx context.Context, jobs []buildJob, workers int, fn func(context.Context, buildJob) BuildResult) []BuildResult {
	if len(jobs) == 0 {
		return nil
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]BuildResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = BuildResult{Name: jobs[idx].name, Err: ctx.Err()}
					continue
				}
				results[idx] = fn(ctx, jobs[idx])
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}
