package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// overdueBatchSize limits how many invoices a single overdue run touches
const overdueBatchSize = 500

// OverdueMarker marks unpaid invoices past their due date as overdue
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time, batchSize int) (int, error)
}

// RankingRunner recomputes leaderboards and milestone awards
type RankingRunner interface {
	RunRankings(ctx context.Context, ref time.Time) (int, error)
	RunMilestones(ctx context.Context) (int, error)
}

// BillingJobExecutor dispatches scheduled jobs to the application services
// and records the outcome in the scheduler job table.
type BillingJobExecutor struct {
	overdueMarker OverdueMarker
	rankingRunner RankingRunner
	jobRepo       *SchedulerJobRepository
	logger        *zap.Logger
}

// NewBillingJobExecutor creates a new billing job executor
func NewBillingJobExecutor(
	overdueMarker OverdueMarker,
	rankingRunner RankingRunner,
	jobRepo *SchedulerJobRepository,
	logger *zap.Logger,
) *BillingJobExecutor {
	return &BillingJobExecutor{
		overdueMarker: overdueMarker,
		rankingRunner: rankingRunner,
		jobRepo:       jobRepo,
		logger:        logger,
	}
}

// Execute runs the job and records its outcome
func (e *BillingJobExecutor) Execute(ctx context.Context, job *Job) error {
	var count int
	var err error

	switch job.Type {
	case JobTypeOverdueInvoices:
		count, err = e.overdueMarker.MarkOverdue(ctx, job.ReferenceAt, overdueBatchSize)
	case JobTypeRankingRun:
		count, err = e.rankingRunner.RunRankings(ctx, job.ReferenceAt)
	case JobTypeMilestoneRun:
		count, err = e.rankingRunner.RunMilestones(ctx)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidJobType, job.Type)
	}

	if e.jobRepo != nil {
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
		}
		if recordErr := e.jobRepo.RecordJobComplete(ctx, job.ID, err == nil, errMsg); recordErr != nil {
			e.logger.Warn("Failed to record job completion",
				zap.String("job_id", job.ID.String()),
				zap.Error(recordErr),
			)
		}
	}

	if err != nil {
		return err
	}

	e.logger.Info("Scheduled job processed",
		zap.String("job_type", string(job.Type)),
		zap.Int("affected", count),
	)
	return nil
}

// Ensure BillingJobExecutor implements JobExecutor
var _ JobExecutor = (*BillingJobExecutor)(nil)
