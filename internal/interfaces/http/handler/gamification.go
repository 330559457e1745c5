package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	gamificationapp "github.com/cargoflow/backend/internal/application/gamification"
	"github.com/cargoflow/backend/internal/domain/gamification"
)

// GamificationHandler handles ranking, badge and notification HTTP requests
type GamificationHandler struct {
	BaseHandler
	rankingService      *gamificationapp.RankingService
	notificationService *gamificationapp.NotificationService
}

// NewGamificationHandler creates a new gamification handler
func NewGamificationHandler(rankingService *gamificationapp.RankingService, notificationService *gamificationapp.NotificationService) *GamificationHandler {
	return &GamificationHandler{
		rankingService:      rankingService,
		notificationService: notificationService,
	}
}

// Leaderboard returns the ranked employees for one metric and period.
// The optional ref query parameter anchors the period; it defaults to now.
func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	metric := gamification.Metric(c.DefaultQuery("metric", string(gamification.MetricRevenue)))
	if !metric.IsValid() {
		h.BadRequest(c, "Invalid leaderboard metric")
		return
	}

	period := gamification.Period(c.DefaultQuery("period", string(gamification.PeriodMonthly)))
	if !period.IsValid() {
		h.BadRequest(c, "Invalid leaderboard period")
		return
	}

	ref := time.Now().UTC()
	if v := c.Query("ref"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.BadRequest(c, "Invalid ref, expected RFC3339")
			return
		}
		ref = parsed
	}

	entries, err := h.rankingService.Leaderboard(c.Request.Context(), metric, period, ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// ListBadges returns the paginated badge history of an employee.
func (h *GamificationHandler) ListBadges(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("employeeId"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	badges, total, err := h.rankingService.ListBadges(c.Request.Context(), employeeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, badges, total, filter.Page, filter.PageSize)
}

// RunRankings recomputes all ranking cells immediately and awards
// badges for the new standings.
func (h *GamificationHandler) RunRankings(c *gin.Context) {
	awarded, err := h.rankingService.RunRankings(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: int64(awarded)})
}

// RunMilestones checks lifetime counters against milestone thresholds
// and awards any newly crossed ones.
func (h *GamificationHandler) RunMilestones(c *gin.Context) {
	awarded, err := h.rankingService.RunMilestones(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: int64(awarded)})
}

// ListNotifications returns the caller's paginated notifications.
func (h *GamificationHandler) ListNotifications(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Recipient identity required")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	notifications, total, err := h.notificationService.List(c.Request.Context(), recipientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, notifications, total, filter.Page, filter.PageSize)
}

// CountUnreadNotifications returns the caller's unread notification count.
func (h *GamificationHandler) CountUnreadNotifications(c *gin.Context) {
	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Recipient identity required")
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), recipientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

// MarkNotificationRead marks one of the caller's notifications as read.
// Another user's notification is reported as not found.
func (h *GamificationHandler) MarkNotificationRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	recipientID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Recipient identity required")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), notificationID, recipientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
