package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"key-dance/pkg/config"
	"key-dance/pkg/models"
)

// Recognizer is satisfied by *recognition.Service.
type Recognizer interface {
	RecognizeBase64(ctx context.Context, data string) (*models.RecognitionResult, error)
}

// Job is one queued recognition. Reply is called exactly once for every job
// a worker picks up.
type Job struct {
	RequestID string
	Data      string
	Ctx       context.Context
	Reply     func(result *models.RecognitionResult, err error)
}

// Manager bounds how many websocket recognitions run at once.
type Manager struct {
	config     config.PipelineConfig
	recognizer Recognizer
	logger     *zap.Logger
	pool       *WorkerPool

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewManager(cfg config.PipelineConfig, recognizer Recognizer, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RecognitionWorkers <= 0 {
		cfg.RecognitionWorkers = 1
	}
	return &Manager{
		config:     cfg,
		recognizer: recognizer,
		logger:     logger,
	}
}

func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var poolCtx context.Context
	poolCtx, m.cancel = context.WithCancel(ctx)

	m.pool = NewWorkerPool(m.config.RecognitionWorkers, m.config.QueueSize, m.process)
	m.pool.Start(poolCtx)

	m.logger.Info("pipeline started",
		zap.Int("workers", m.config.RecognitionWorkers),
		zap.Int("queue_size", m.config.QueueSize))
	return nil
}

// Stop drains queued jobs, then cancels the workers.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool == nil {
		return
	}
	m.logger.Info("pipeline stopping")
	m.pool.Stop()
	m.cancel()
	m.pool = nil
	m.logger.Info("pipeline stopped")
}

func (m *Manager) Submit(job *Job) error {
	m.mu.Lock()
	pool := m.pool
	m.mu.Unlock()

	if pool == nil {
		return ErrShuttingDown
	}
	if err := pool.TrySubmit(job); err != nil {
		m.logger.Warn("recognition job rejected", zap.String("request_id", job.RequestID), zap.Error(err))
		return err
	}
	return nil
}

func (m *Manager) process(ctx context.Context, job *Job) {
	jobCtx := job.Ctx
	if jobCtx == nil {
		jobCtx = ctx
	}

	result, err := m.recognizer.RecognizeBase64(jobCtx, job.Data)
	job.Reply(result, err)
}
