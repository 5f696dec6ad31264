package devserver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Abraxas-365/hireboard/internal/ai"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
)

const (
	analysisMaxAttempts = 3
	dequeueTimeout      = 2 * time.Second
	delayedSweep        = 5 * time.Second
)

// Analyzer analyzes uploaded resumes in the background, so that the first
// analyze-resume call for an upload is answered from the result cache
type Analyzer struct {
	store   *Store
	engine  ai.Engine
	queue   Queue
	workers int

	// retryDelay returns the wait before the given attempt is retried
	retryDelay func(attempt int) time.Duration
	sweepEvery time.Duration

	wg sync.WaitGroup
}

// NewAnalyzer creates an analyzer with workers goroutines
func NewAnalyzer(store *Store, engine ai.Engine, queue Queue, workers int) *Analyzer {
	if workers <= 0 {
		workers = 1
	}
	return &Analyzer{
		store:      store,
		engine:     engine,
		queue:      queue,
		workers:    workers,
		sweepEvery: delayedSweep,
		retryDelay: func(attempt int) time.Duration {
			return time.Duration(1<<uint(attempt)) * time.Second
		},
	}
}

// Submit queues the analysis of an uploaded resume
func (a *Analyzer) Submit(ctx context.Context, owner kernel.UserID, url kernel.FileURL) error {
	return a.queue.Enqueue(ctx, AnalysisJob{
		ID:          newID(),
		Owner:       owner,
		ResumeURL:   url,
		MaxAttempts: analysisMaxAttempts,
		CreatedAt:   a.store.now(),
	})
}

// Start runs the worker pool and the retry mover until ctx is done
func (a *Analyzer) Start(ctx context.Context) {
	logx.Debugf("Starting %d resume analysis workers", a.workers)

	a.wg.Add(a.workers + 1)
	go a.moveDelayed(ctx)
	for i := 0; i < a.workers; i++ {
		go a.work(ctx, i)
	}
}

// Wait blocks until every worker stopped
func (a *Analyzer) Wait() {
	a.wg.Wait()
}

func (a *Analyzer) work(ctx context.Context, worker int) {
	defer a.wg.Done()
	for {
		if ctx.Err() != nil {
			return
		}
		job, err := a.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logx.Errorf("Analysis worker %d dequeue error: %v", worker, err)
				time.Sleep(time.Second)
			}
			continue
		}
		if job == nil {
			continue
		}
		a.handle(ctx, worker, *job)
	}
}

func (a *Analyzer) handle(ctx context.Context, worker int, job AnalysisJob) {
	logx.Debugf("Worker %d analyzing %s (attempt %d/%d)", worker, job.ResumeURL, job.AttemptCount+1, job.MaxAttempts)

	err := a.Process(ctx, job)
	if err == nil {
		return
	}

	job.AttemptCount++
	if job.AttemptCount >= job.MaxAttempts {
		logx.Errorf("Resume analysis %s failed permanently after %d attempts: %v", job.ID, job.AttemptCount, err)
		return
	}
	delay := a.retryDelay(job.AttemptCount)
	logx.Warnf("Resume analysis %s failed, retrying in %s: %v", job.ID, delay, err)
	if qerr := a.queue.EnqueueDelayed(ctx, job, delay); qerr != nil {
		logx.Errorf("Failed to schedule retry of %s: %v", job.ID, qerr)
	}
}

// Process analyzes one resume, caches the result and tells the owner
func (a *Analyzer) Process(ctx context.Context, job AnalysisJob) error {
	f, ok := a.store.FileByURL(job.ResumeURL)
	if !ok {
		// Replaced or never stored. Nothing to retry.
		logx.Warnf("Resume %s is gone, skipping analysis", job.ResumeURL)
		return nil
	}

	analysis, err := a.engine.AnalyzeResume(ctx, ai.Document{
		Name:        f.Name,
		ContentType: f.ContentType,
		Data:        f.Data,
	}, nil)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", job.ResumeURL, err)
	}

	a.store.SetAnalysis(job.ResumeURL, analysis)
	a.store.Notify(job.Owner, notification.TypeSystem, "Resume analyzed",
		"Your resume feedback is ready. "+analysis.Summary)
	return nil
}

func (a *Analyzer) moveDelayed(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := a.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed analyses: %v", err)
			} else if count > 0 {
				logx.Debugf("Moved %d delayed analyses to ready queue", count)
			}
		}
	}
}
