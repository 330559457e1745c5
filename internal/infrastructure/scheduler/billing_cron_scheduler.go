package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cronTickerInterval is the interval at which the cron scheduler checks for execution
const cronTickerInterval = 1 * time.Minute

// BillingCronSchedulerConfig holds configuration for the cron-based billing scheduler
type BillingCronSchedulerConfig struct {
	// Enabled indicates if the cron scheduler is enabled
	Enabled bool
	// OverdueHour/OverdueMinute is the daily time to mark overdue invoices
	OverdueHour   int
	OverdueMinute int
	// RankingHour/RankingMinute is the daily time to recompute rankings
	RankingHour   int
	RankingMinute int
	// OverdueCronSchedule is the cron expression for the overdue job (parsed to hour/minute)
	OverdueCronSchedule string
	// RankingCronSchedule is the cron expression for the ranking job (parsed to hour/minute)
	RankingCronSchedule string
	// JobTimeout is the maximum time a single job can run
	JobTimeout time.Duration
	// MaxConcurrentJobs is the maximum number of concurrent jobs
	MaxConcurrentJobs int
	// RetryAttempts is the number of retry attempts for failed jobs
	RetryAttempts int
	// RetryDelay is the delay between retries
	RetryDelay time.Duration
}

// DefaultBillingCronSchedulerConfig returns default cron scheduler configuration
// Overdue marking runs at 1:00 AM, rankings at 2:00 AM
func DefaultBillingCronSchedulerConfig() BillingCronSchedulerConfig {
	return BillingCronSchedulerConfig{
		Enabled:             true,
		OverdueHour:         1,
		OverdueMinute:       0,
		RankingHour:         2,
		RankingMinute:       0,
		OverdueCronSchedule: "0 1 * * *",
		RankingCronSchedule: "0 2 * * *",
		JobTimeout:          30 * time.Minute,
		MaxConcurrentJobs:   3,
		RetryAttempts:       3,
		RetryDelay:          5 * time.Minute,
	}
}

// ParseCronSchedule parses a cron expression "minute hour * * *" to extract hour and minute
// Returns defaults (2:00) if parsing fails or expression is empty
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	// Default values
	hour = 2
	minute = 0

	if cronExpr == "" {
		return hour, minute, nil
	}

	// Use strings.Fields for simple whitespace splitting
	parts := strings.Fields(cronExpr)

	if len(parts) < 2 {
		return hour, minute, nil
	}

	// Parse minute
	if parts[0] != "*" {
		if val, parseErr := parseIntOrDefault(parts[0], 0); parseErr == nil {
			minute = val
		}
	}

	// Parse hour
	if parts[1] != "*" {
		if val, parseErr := parseIntOrDefault(parts[1], 2); parseErr == nil {
			hour = val
		}
	}

	// Validate ranges
	if minute < 0 || minute > 59 {
		return 2, 0, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 2, 0, fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	return hour, minute, nil
}

// parseIntOrDefault parses an int string or returns default
func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if s == "" || s == "*" {
		return defaultVal, nil
	}
	var val int
	for _, c := range s {
		if c < '0' || c > '9' {
			return defaultVal, ErrInvalidConfig
		}
		val = val*10 + int(c-'0')
	}
	return val, nil
}

// SchedulerJobRecord represents a record of a scheduled job execution
type SchedulerJobRecord struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	JobType     string     `gorm:"column:job_type;size:50;not null"`
	Status      string     `gorm:"column:last_run_status;size:20"`
	Error       string     `gorm:"column:last_error;type:text"`
	StartedAt   *time.Time `gorm:"column:last_run_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	NextRunAt   *time.Time `gorm:"column:next_run_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (SchedulerJobRecord) TableName() string {
	return "scheduler_jobs"
}

// SchedulerJobRepository handles persistence of scheduler job records
type SchedulerJobRepository struct {
	db *gorm.DB
}

// NewSchedulerJobRepository creates a new SchedulerJobRepository
func NewSchedulerJobRepository(db *gorm.DB) *SchedulerJobRepository {
	return &SchedulerJobRepository{db: db}
}

// RecordJobStart records the start of a job execution
func (r *SchedulerJobRepository) RecordJobStart(ctx context.Context, jobID uuid.UUID, jobType JobType) error {
	now := time.Now()
	record := &SchedulerJobRecord{
		ID:        jobID,
		JobType:   string(jobType),
		Status:    string(JobStatusRunning),
		StartedAt: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// RecordJobComplete records the completion of a job
func (r *SchedulerJobRepository) RecordJobComplete(ctx context.Context, jobID uuid.UUID, success bool, errMsg string) error {
	now := time.Now()
	status := string(JobStatusSuccess)
	if !success {
		status = string(JobStatusFailed)
	}
	return r.db.WithContext(ctx).
		Model(&SchedulerJobRecord{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"last_run_status": status,
			"last_error":      errMsg,
			"completed_at":    now,
			"updated_at":      now,
		}).Error
}

// GetLastJobStatus gets the last job record for a job type
func (r *SchedulerJobRepository) GetLastJobStatus(ctx context.Context, jobType JobType) (*SchedulerJobRecord, error) {
	var record SchedulerJobRecord
	err := r.db.WithContext(ctx).
		Where("job_type = ?", string(jobType)).
		Order("last_run_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// BillingCronScheduler runs the daily billing maintenance jobs: overdue
// invoice marking and ranking recomputation. Each has its own daily slot.
type BillingCronScheduler struct {
	config    BillingCronSchedulerConfig
	executor  JobExecutor
	jobRepo   *SchedulerJobRepository
	logger    *zap.Logger
	scheduler *Scheduler

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	// Last execution tracking per job type
	lastRunAt map[JobType]*time.Time
	nextRunAt map[JobType]*time.Time
}

// NewBillingCronScheduler creates a new cron-based billing scheduler
func NewBillingCronScheduler(
	config BillingCronSchedulerConfig,
	executor JobExecutor,
	jobRepo *SchedulerJobRepository,
	logger *zap.Logger,
) *BillingCronScheduler {
	schedulerConfig := SchedulerConfig{
		Enabled:           config.Enabled,
		MaxConcurrentJobs: config.MaxConcurrentJobs,
		JobTimeout:        config.JobTimeout,
		RetryAttempts:     config.RetryAttempts,
		RetryDelay:        config.RetryDelay,
	}
	scheduler := NewScheduler(schedulerConfig, executor, logger)

	return &BillingCronScheduler{
		config:    config,
		executor:  executor,
		jobRepo:   jobRepo,
		logger:    logger,
		scheduler: scheduler,
		lastRunAt: make(map[JobType]*time.Time),
		nextRunAt: make(map[JobType]*time.Time),
	}
}

// Start starts the cron scheduler
func (s *BillingCronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	// Start the underlying job scheduler
	if err := s.scheduler.Start(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Calculate next run times
	s.calculateNextRunTime(JobTypeOverdueInvoices, s.config.OverdueHour, s.config.OverdueMinute)
	s.calculateNextRunTime(JobTypeRankingRun, s.config.RankingHour, s.config.RankingMinute)

	// Start the cron ticker
	s.wg.Add(1)
	go s.cronLoop(ctx)

	s.logger.Info("Billing cron scheduler started",
		zap.Int("overdue_hour", s.config.OverdueHour),
		zap.Int("overdue_minute", s.config.OverdueMinute),
		zap.Int("ranking_hour", s.config.RankingHour),
		zap.Int("ranking_minute", s.config.RankingMinute),
	)

	return nil
}

// Stop stops the cron scheduler
func (s *BillingCronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	// Cancel the cron loop
	if s.cancel != nil {
		s.cancel()
	}

	// Wait for cron loop to finish
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// Now stop the underlying scheduler
		if err := s.scheduler.Stop(ctx); err != nil {
			s.logger.Warn("Error stopping underlying scheduler", zap.Error(err))
		}
		s.logger.Info("Billing cron scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Billing cron scheduler stop timed out")
		return ctx.Err()
	}
}

// cronLoop runs the main cron loop
func (s *BillingCronScheduler) cronLoop(ctx context.Context) {
	defer s.wg.Done()

	// Use a ticker that checks every minute for cron execution
	ticker := time.NewTicker(cronTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Hour() == s.config.OverdueHour && now.Minute() == s.config.OverdueMinute {
				s.runJobs(ctx, now, JobTypeOverdueInvoices)
				s.calculateNextRunTime(JobTypeOverdueInvoices, s.config.OverdueHour, s.config.OverdueMinute)
			}
			if now.Hour() == s.config.RankingHour && now.Minute() == s.config.RankingMinute {
				s.runJobs(ctx, now, JobTypeRankingRun, JobTypeMilestoneRun)
				s.calculateNextRunTime(JobTypeRankingRun, s.config.RankingHour, s.config.RankingMinute)
			}
		}
	}
}

// calculateNextRunTime calculates the next run time for a job type
func (s *BillingCronScheduler) calculateNextRunTime(jobType JobType, hour, minute int) {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	// If we've already passed today's run time, schedule for tomorrow
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	s.mu.Lock()
	s.nextRunAt[jobType] = &next
	s.mu.Unlock()
}

// runJobs submits the given job types for execution
func (s *BillingCronScheduler) runJobs(ctx context.Context, referenceAt time.Time, jobTypes ...JobType) {
	for _, jobType := range jobTypes {
		now := time.Now()
		s.mu.Lock()
		s.lastRunAt[jobType] = &now
		s.mu.Unlock()

		job := NewJob(jobType, referenceAt, s.config.RetryAttempts)

		if s.jobRepo != nil {
			if err := s.jobRepo.RecordJobStart(ctx, job.ID, jobType); err != nil {
				s.logger.Warn("Failed to record job start",
					zap.String("job_type", string(jobType)),
					zap.Error(err),
				)
			}
		}

		if err := s.scheduler.SubmitJob(job); err != nil {
			s.logger.Error("Failed to submit job",
				zap.String("job_type", string(jobType)),
				zap.Error(err),
			)
			if s.jobRepo != nil {
				_ = s.jobRepo.RecordJobComplete(ctx, job.ID, false, err.Error())
			}
			continue
		}

		s.logger.Debug("Scheduled job", zap.String("job_type", string(jobType)))
	}
}

// TriggerManualRun triggers a manual run of the given job type
// Note: Uses background context to avoid premature cancellation when HTTP request completes
func (s *BillingCronScheduler) TriggerManualRun(ctx context.Context, jobType JobType) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	valid := false
	for _, jt := range AllJobTypes() {
		if jt == jobType {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidJobType
	}

	// Use background context to prevent premature cancellation when HTTP request completes
	go s.runJobs(context.Background(), time.Now(), jobType)
	return nil
}

// GetStatus returns the current status of the cron scheduler
func (s *BillingCronScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":             s.config.Enabled,
		"is_running":          s.isRunning,
		"overdue_hour":        s.config.OverdueHour,
		"overdue_minute":      s.config.OverdueMinute,
		"ranking_hour":        s.config.RankingHour,
		"ranking_minute":      s.config.RankingMinute,
		"last_overdue_run_at": s.lastRunAt[JobTypeOverdueInvoices],
		"next_overdue_run_at": s.nextRunAt[JobTypeOverdueInvoices],
		"last_ranking_run_at": s.lastRunAt[JobTypeRankingRun],
		"next_ranking_run_at": s.nextRunAt[JobTypeRankingRun],
		"job_types":           AllJobTypes(),
	}
}

// GetNextRunAt returns when the next scheduled run for a job type will occur
func (s *BillingCronScheduler) GetNextRunAt(jobType JobType) *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt[jobType]
}

// GetLastRunAt returns when the last run for a job type occurred
func (s *BillingCronScheduler) GetLastRunAt(jobType JobType) *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt[jobType]
}
