package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ca-vahid/hiring-manager/internal/repositories"
)

// Worker drains the analysis job queue with a fixed number of goroutines and
// periodically re-enqueues queued rows the API created while the queue was
// full or the process was down.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type worker struct {
	analysisRepo repositories.AnalysisRepository
	analyzer     AnalyzerService
	jobQueue     chan uuid.UUID
	concurrency  int
	logger       *zap.Logger
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	analysisRepo repositories.AnalysisRepository,
	analyzer AnalyzerService,
	concurrency int,
	logger *zap.Logger,
) Worker {
	return &worker{
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting analysis worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.logger.Info("stopping analysis worker")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("analysis worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	select {
	case w.jobQueue <- analysisID:
		w.logger.Debug("analysis job enqueued", zap.String("analysis_id", analysisID.String()))
	case <-w.stopChan:
		w.logger.Warn("worker stopped, job not enqueued", zap.String("analysis_id", analysisID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("worker goroutine stopped", zap.Int("worker", workerID))
			return
		case analysisID := <-w.jobQueue:
			if err := w.analyzer.AnalyzeDocument(ctx, analysisID); err != nil {
				w.logger.Error("analysis job failed",
					zap.Int("worker", workerID),
					zap.String("analysis_id", analysisID.String()),
					zap.Error(err))
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.analysisRepo.FindPendingJobs(10)
			if err != nil {
				w.logger.Warn("failed to fetch pending jobs", zap.Error(err))
				continue
			}

			for _, job := range pending {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
