package gamification

import (
	"context"
	"fmt"
	"time"

	"github.com/cargoflow/backend/internal/domain/gamification"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// milestoneThresholds are the lifetime counts that earn a milestone,
// checked lowest first
var milestoneThresholds = []int64{10, 50, 100, 500, 1000}

// milestoneMetric maps each milestone type to the metric whose
// lifetime aggregate it counts
var milestoneMetric = map[gamification.MilestoneType]gamification.Metric{
	gamification.MilestoneInvoicesIssued:   gamification.MetricInvoices,
	gamification.MilestoneEstimatesCreated: gamification.MetricEstimates,
	gamification.MilestoneShipmentsHandled: gamification.MetricShipments,
	gamification.MilestoneRevenueCollected: gamification.MetricRevenue,
}

// RankingService runs the periodic badge awards. Each run ranks every
// metric over every period window and awards gold, silver and bronze
// to the top three scorers. Re-running the same window is a no-op.
type RankingService struct {
	badgeRepo        gamification.BadgeRepository
	milestoneRepo    gamification.MilestoneRepository
	notificationRepo gamification.NotificationRepository
	scores           gamification.ScoreReader
	txManager        shared.TransactionManager
	logger           *zap.Logger
}

// NewRankingService creates a new RankingService
func NewRankingService(
	badgeRepo gamification.BadgeRepository,
	milestoneRepo gamification.MilestoneRepository,
	notificationRepo gamification.NotificationRepository,
	scores gamification.ScoreReader,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *RankingService {
	return &RankingService{
		badgeRepo:        badgeRepo,
		milestoneRepo:    milestoneRepo,
		notificationRepo: notificationRepo,
		scores:           scores,
		txManager:        txManager,
		logger:           logger,
	}
}

// RunRankings evaluates every (metric, period) cell at the reference
// instant and awards badges for the current windows. Each cell runs
// in its own transaction so one bad cell cannot roll back the rest.
// Returns the number of badges awarded.
func (s *RankingService) RunRankings(ctx context.Context, ref time.Time) (int, error) {
	awarded := 0
	for _, period := range gamification.AllPeriods() {
		periodStart := period.Start(ref)
		for _, metric := range gamification.AllMetrics() {
			n, err := s.runCell(ctx, metric, period, periodStart)
			if err != nil {
				s.logger.Error("ranking cell failed",
					zap.String("metric", string(metric)),
					zap.String("period", string(period)),
					zap.Error(err))
				return awarded, err
			}
			awarded += n
		}
	}
	return awarded, nil
}

func (s *RankingService) runCell(ctx context.Context, metric gamification.Metric, period gamification.Period, periodStart time.Time) (int, error) {
	scores, err := s.scores.ScoresSince(ctx, metric, periodStart)
	if err != nil {
		return 0, err
	}

	awarded := 0
	for rank, score := range scores {
		tier, ok := gamification.TierForRank(rank)
		if !ok {
			break
		}
		if !score.Value.IsPositive() {
			break
		}

		err := s.txManager.Do(ctx, func(ctx context.Context) error {
			exists, err := s.badgeRepo.Exists(ctx, score.EmployeeID, metric, period, periodStart)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}

			badge, err := gamification.NewEmployeeBadge(score.EmployeeID, metric, period, periodStart, tier, score.Value)
			if err != nil {
				return err
			}
			if err := s.badgeRepo.Save(ctx, badge); err != nil {
				return err
			}
			awarded++

			notification, err := gamification.NewNotification(
				score.EmployeeID,
				gamification.NotificationBadgeAwarded,
				fmt.Sprintf("%s badge earned", tier),
				fmt.Sprintf("You ranked #%d on %s for the %s window", rank+1, metric, period),
			)
			if err != nil {
				return err
			}
			return s.notificationRepo.Save(ctx, notification)
		})
		if err != nil {
			return awarded, err
		}
	}
	return awarded, nil
}

// RunMilestones checks every employee's lifetime aggregates against
// the milestone thresholds and records the ones newly crossed.
// Returns the number of milestones recorded.
func (s *RankingService) RunMilestones(ctx context.Context) (int, error) {
	recorded := 0
	for milestoneType, metric := range milestoneMetric {
		scores, err := s.scores.ScoresSince(ctx, metric, time.Time{})
		if err != nil {
			return recorded, err
		}

		for _, score := range scores {
			for _, threshold := range milestoneThresholds {
				if score.Value.LessThan(decimal.NewFromInt(threshold)) {
					break
				}

				crossed, err := s.recordMilestone(ctx, score.EmployeeID, milestoneType, threshold)
				if err != nil {
					return recorded, err
				}
				if crossed {
					recorded++
				}
			}
		}
	}
	return recorded, nil
}

func (s *RankingService) recordMilestone(ctx context.Context, employeeID uuid.UUID, milestoneType gamification.MilestoneType, threshold int64) (bool, error) {
	crossed := false
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		exists, err := s.milestoneRepo.Exists(ctx, employeeID, milestoneType, threshold)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		milestone, err := gamification.NewEmployeeMilestone(employeeID, milestoneType, threshold)
		if err != nil {
			return err
		}
		if err := s.milestoneRepo.Save(ctx, milestone); err != nil {
			return err
		}
		crossed = true

		notification, err := gamification.NewNotification(
			employeeID,
			gamification.NotificationMilestoneReached,
			fmt.Sprintf("Milestone reached: %d %s", threshold, milestoneType),
			"",
		)
		if err != nil {
			return err
		}
		return s.notificationRepo.Save(ctx, notification)
	})
	return crossed, err
}

// Leaderboard returns the current standings for one metric and period
// window, tiers attached to the top three
func (s *RankingService) Leaderboard(ctx context.Context, metric gamification.Metric, period gamification.Period, ref time.Time) ([]LeaderboardEntry, error) {
	if !metric.IsValid() {
		return nil, shared.NewDomainError("INVALID_METRIC", "Metric is not valid")
	}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is not valid")
	}

	scores, err := s.scores.ScoresSince(ctx, metric, period.Start(ref))
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(scores))
	for i, score := range scores {
		entry := LeaderboardEntry{
			Rank:       i + 1,
			EmployeeID: score.EmployeeID,
			Value:      score.Value,
		}
		if tier, ok := gamification.TierForRank(i); ok {
			entry.Tier = string(tier)
		}
		entries[i] = entry
	}
	return entries, nil
}

// ListBadges retrieves an employee's badge history
func (s *RankingService) ListBadges(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]BadgeResponse, int64, error) {
	badges, total, err := s.badgeRepo.FindByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BadgeResponse, len(badges))
	for i := range badges {
		responses[i] = ToBadgeResponse(&badges[i])
	}
	return responses, total, nil
}
