package leavetype

import (
	"context"
	"encoding/json"
	"time"

	leavetypeerrors "github.com/danny20232023/hris-sub007/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const CacheKeyPrefix = "leave_types:"

const cacheTTL = 1 * time.Hour

func CacheKey(companyID string) string {
	return CacheKeyPrefix + companyID
}

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)
	Resolve(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
	Invalidate(ctx context.Context, companyID string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	key := CacheKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp []LeaveTypeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("leave type cache read failed", zap.String("company_id", companyID), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		types, err := s.repo.FindActiveByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(types)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
					s.logger.Warn("leave type cache write failed", zap.String("company_id", companyID), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("load leave types failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

// Resolve looks the id up in the active catalogue of the company.
func (s *service) Resolve(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	types, err := s.GetAll(ctx, companyID)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	for _, t := range types {
		if t.ID == id {
			return t, nil
		}
	}
	return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
}

func (s *service) Invalidate(ctx context.Context, companyID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, CacheKey(companyID)).Err()
}

func mapToResponse(t LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:   t.ID.String(),
		Code: t.Code,
		Name: t.Name,
	}
	if t.CreditCategory != nil {
		resp.CreditCategory = *t.CreditCategory
	}
	return resp
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapToResponse(t)
	}
	return resp
}
