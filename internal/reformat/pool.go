package reformat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const releaseTimeout = 10 * time.Second

// Pool runs jobs on a fixed number of goroutines. Each running job owns one
// Processor, and with it one arena; processors are recycled between jobs.
type Pool struct {
	opts    Options
	logger  log.Logger
	metrics *metrics
	workers *ants.Pool

	processors sync.Pool

	processed atomic.Int64
	failed    atomic.Int64
}

// Stats counts the jobs a Pool finished.
type Stats struct {
	Processed int64
	Failed    int64
}

// NewPool creates a pool of size workers. Metrics are registered on reg,
// which may be nil.
func NewPool(size int, opts Options, logger log.Logger, reg prometheus.Registerer) (*Pool, error) {
	p := &Pool{
		opts:    opts,
		logger:  logger,
		metrics: newMetrics(reg),
	}
	p.processors.New = func() any { return NewProcessor(p.opts) }

	workers, err := ants.NewPool(size,
		ants.WithPreAlloc(true),
		ants.WithLogger(antsLogger{logger}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	p.workers = workers
	return p, nil
}

// Run processes jobs concurrently and returns their results in the order of
// jobs. Jobs not started when ctx is done fail with the context error.
//
// A panic other than arena exhaustion inside a job is raised again by Run,
// after every other job has finished.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	panics := make([]any, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		if err := ctx.Err(); err != nil {
			results[i] = p.cancelled(jobs[i], err)
			continue
		}

		wg.Add(1)
		err := p.workers.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panics[i] = r
				}
			}()
			if err := ctx.Err(); err != nil {
				results[i] = p.cancelled(jobs[i], err)
				return
			}
			results[i] = p.process(jobs[i])
		})
		if err != nil {
			wg.Done()
			results[i] = p.finish(Result{Name: jobs[i].name(), Err: errors.Wrap(err, "submit job")})
		}
	}
	wg.Wait()

	for _, r := range panics {
		if r != nil {
			panic(r)
		}
	}
	return results
}

func (p *Pool) process(job Job) Result {
	proc := p.processors.Get().(*Processor)
	defer p.processors.Put(proc)
	return p.finish(proc.Process(job))
}

func (p *Pool) cancelled(job Job, err error) Result {
	return p.finish(Result{Name: job.name(), Err: errors.Wrap(err, "job not started")})
}

// finish accounts for a result and logs it.
func (p *Pool) finish(res Result) Result {
	p.processed.Inc()
	p.metrics.observe(res)

	if res.Err != nil {
		p.failed.Inc()
		level.Warn(p.logger).Log("msg", "failed to reformat", "name", res.Name, "err", res.Err)
		return res
	}
	level.Debug(p.logger).Log(
		"msg", "reformatted",
		"name", res.Name,
		"input", humanize.Bytes(uint64(res.InputBytes)),
		"output", humanize.Bytes(uint64(res.OutputBytes)),
		"arena_used", humanize.Bytes(uint64(res.ArenaUsed)),
		"duration", res.Duration,
	)
	return res
}

// Stats returns the number of jobs finished so far.
func (p *Pool) Stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
	}
}

// Close stops the workers and waits for them to exit.
func (p *Pool) Close() error {
	return errors.Wrap(p.workers.ReleaseTimeout(releaseTimeout), "release worker pool")
}

// antsLogger routes the worker pool's own messages to the go-kit logger.
type antsLogger struct {
	logger log.Logger
}

func (l antsLogger) Printf(format string, args ...any) {
	level.Warn(l.logger).Log("msg", fmt.Sprintf(format, args...), "component", "worker-pool")
}
