package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fieldly/models"
	"fieldly/utils"
)

const statusCacheTTL = 2 * time.Minute

func statusCacheKey(workerID string) string {
	return "presence:" + workerID
}

// SetOnlineStatus upserts the worker's presence record. Going offline always
// clears the quick-booking flag.
func (s *DefaultAvailabilityService) SetOnlineStatus(ctx context.Context, workerID string, isOnline, acceptsQuickBookings bool) error {
	now := time.Now()
	status := &models.WorkerOnlineStatus{
		WorkerID:                    workerID,
		IsOnline:                    isOnline,
		IsAvailableForQuickBookings: isOnline && acceptsQuickBookings,
		LastActiveAt:                now,
		UpdatedAt:                   now,
	}
	if err := s.Repo.UpsertOnlineStatus(ctx, status); err != nil {
		return fmt.Errorf("failed to set online status: %w", err)
	}
	s.cacheStatus(ctx, status)
	return nil
}

// GetOnlineStatus returns the worker's presence, nil if never set.
// Reads go through the presence cache when one is configured.
func (s *DefaultAvailabilityService) GetOnlineStatus(ctx context.Context, workerID string) (*models.WorkerOnlineStatus, error) {
	if cached := s.cachedStatus(ctx, workerID); cached != nil {
		return cached, nil
	}
	status, err := s.Repo.GetOnlineStatus(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if status != nil {
		s.cacheStatus(ctx, status)
	}
	return status, nil
}

func (s *DefaultAvailabilityService) SetDayAvailability(ctx context.Context, workerID, date string, isAvailable bool) error {
	return s.Repo.SetDayAvailability(ctx, workerID, date, isAvailable)
}

// DropStatusCache evicts cached presence entries.
func (s *DefaultAvailabilityService) DropStatusCache(ctx context.Context, workerIDs ...string) {
	if s.Cache == nil || len(workerIDs) == 0 {
		return
	}
	keys := make([]string, len(workerIDs))
	for i, id := range workerIDs {
		keys[i] = statusCacheKey(id)
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("failed to drop presence cache entries", zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) cacheStatus(ctx context.Context, status *models.WorkerOnlineStatus) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(status)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, statusCacheKey(status.WorkerID), data, statusCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache presence",
			zap.String("workerId", status.WorkerID), zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) cachedStatus(ctx context.Context, workerID string) *models.WorkerOnlineStatus {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, statusCacheKey(workerID)).Result()
	if err != nil {
		return nil
	}
	var status models.WorkerOnlineStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil
	}
	return &status
}
