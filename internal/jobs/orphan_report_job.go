package jobs

import (
	"context"
	"time"

	"github.com/ecostock/ecostock-api/internal/domain"
	"go.uber.org/zap"
)

// OrphanReportJobName is the name of the orphaned ramo report job
const OrphanReportJobName = "orphan_ramo_report"

// OrphanFinder lists companies whose ramo names no existing category.
// Deleting a category leaves such companies behind.
type OrphanFinder interface {
	ListOrphanedRamo(ctx context.Context) ([]domain.Empresa, error)
}

// OrphanReportJob logs companies left pointing at a deleted category
type OrphanReportJob struct {
	finder  OrphanFinder
	logger  *zap.Logger
	timeout time.Duration
}

// NewOrphanReportJob creates a new orphaned ramo report job
func NewOrphanReportJob(finder OrphanFinder, logger *zap.Logger, timeout time.Duration) *OrphanReportJob {
	return &OrphanReportJob{
		finder:  finder,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one report. It returns the number of orphaned companies found.
func (j *OrphanReportJob) Run() int {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	empresas, err := j.finder.ListOrphanedRamo(ctx)
	if err != nil {
		j.logger.Error("orphaned ramo report failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return 0
	}

	if len(empresas) == 0 {
		j.logger.Debug("no companies with orphaned ramo")
		return 0
	}

	byRamo := make(map[string][]int64)
	for _, e := range empresas {
		if e.Ramo == nil {
			continue
		}
		byRamo[*e.Ramo] = append(byRamo[*e.Ramo], e.ID)
	}
	for ramo, ids := range byRamo {
		j.logger.Warn("companies reference a category that no longer exists",
			zap.String("ramo", ramo),
			zap.Int64s("empresa_ids", ids))
	}

	j.logger.Info("orphaned ramo report completed",
		zap.Int("empresas", len(empresas)),
		zap.Int("ramos", len(byRamo)),
		zap.Duration("duration", time.Since(start)))

	return len(empresas)
}

// RegisterOrphanReportJob registers the orphaned ramo report with the scheduler
func RegisterOrphanReportJob(scheduler *Scheduler, finder OrphanFinder, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewOrphanReportJob(finder, logger, timeout)
	return scheduler.AddJob(OrphanReportJobName, cronExpr, func() { job.Run() })
}
