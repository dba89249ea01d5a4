package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
)

// ErrScanlineFailed wraps any failure raised while rendering a scanline
var ErrScanlineFailed = errors.New("scanline render failed")

// ScanlineTask represents one scanline for the worker pool
type ScanlineTask struct {
	Row int // Scanline index, 0 = bottom of the view
}

// ScanlineResult contains a rendered scanline keyed by its row
type ScanlineResult struct {
	Row    int
	Pixels []RGB
	Stats  ScanlineStats
}

// WorkerPool renders scanlines on a fixed number of goroutines
type WorkerPool struct {
	renderer   *ScanlineRenderer
	numWorkers int
}

// Worker handles individual scanline tasks
type Worker struct {
	ID       int
	renderer *ScanlineRenderer
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(renderer *ScanlineRenderer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &WorkerPool{
		renderer:   renderer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders scanlines [0, rows) and hands every result to collect on the
// calling goroutine, in completion order. The first worker or collect error
// stops the remaining tasks and is returned.
func (wp *WorkerPool) Run(ctx context.Context, rows int, collect func(ScanlineResult) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	taskQueue := make(chan ScanlineTask)
	resultQueue := make(chan ScanlineResult, wp.numWorkers)

	g.Go(func() error {
		defer close(taskQueue)
		for row := 0; row < rows; row++ {
			select {
			case taskQueue <- ScanlineTask{Row: row}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	for i := 0; i < wp.numWorkers; i++ {
		worker := &Worker{ID: i, renderer: wp.renderer}
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			return worker.run(gctx, taskQueue, resultQueue)
		})
	}

	go func() {
		workers.Wait()
		close(resultQueue)
	}()

	var collectErr error
	for result := range resultQueue {
		if collectErr != nil {
			continue // drain so workers can exit
		}
		if err := collect(result); err != nil {
			collectErr = err
			cancel()
		}
	}

	waitErr := g.Wait()
	if collectErr != nil {
		return collectErr
	}
	return waitErr
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, tasks <-chan ScanlineTask, results chan<- ScanlineResult) error {
	for task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := renderTask(w.renderer, task)
		if err != nil {
			return err
		}

		select {
		case results <- result:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// renderTask renders one scanline with its own seeded random stream and turns
// a panic into an error carrying the row
func renderTask(renderer *ScanlineRenderer, task ScanlineTask) (result ScanlineResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: row %d: %v\n%s", ErrScanlineFailed, task.Row, r, debug.Stack())
		}
	}()

	sampler := core.NewSeededSampler(renderer.config.ScanlineSeed(task.Row))
	pixels, stats := renderer.RenderScanline(task.Row, sampler)

	return ScanlineResult{
		Row:    task.Row,
		Pixels: pixels,
		Stats:  stats,
	}, nil
}
