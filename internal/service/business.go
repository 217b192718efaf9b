package service

import (
	"context"
	"time"

	"github.com/Kabele/invoicely/internal/api/dto"
	"github.com/Kabele/invoicely/internal/cache"
	"github.com/Kabele/invoicely/internal/domain/business"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/types"
)

// cached profiles are invalidated on save; the TTL only bounds staleness
// from writes that bypass this service
const businessCacheTTL = 5 * time.Minute

type BusinessService interface {
	LoadBusiness(ctx context.Context) (*dto.BusinessResponse, error)
	SaveBusiness(ctx context.Context, req *dto.SaveBusinessRequest) (*dto.SaveBusinessResponse, error)
}

type businessService struct {
	ServiceParams
	cache cache.Cache
}

func NewBusinessService(params ServiceParams, cache cache.Cache) BusinessService {
	return &businessService{
		ServiceParams: params,
		cache:         cache,
	}
}

// LoadBusiness returns the current user's profile. A user who never saved
// anything gets the defaults, never an error, so the first load always has
// something to render. The first load also seeds a record carrying the
// user's email so subsequent reads are consistent.
func (s *businessService) LoadBusiness(ctx context.Context) (*dto.BusinessResponse, error) {
	key := cache.GenerateKey(cache.PrefixBusiness, types.GetUserID(ctx))
	if cached, ok := s.cache.Get(ctx, key); ok {
		if info, ok := cached.(*business.BusinessInfo); ok {
			return dto.NewBusinessResponse(info), nil
		}
	}

	info, err := s.BusinessRepo.Get(ctx)
	if ierr.IsNotFound(err) {
		now := time.Now().UTC()
		seed := business.Defaults()
		seed.UserID = types.GetUserID(ctx)
		seed.Email = types.GetUserEmail(ctx)
		seed.CreatedAt = now
		seed.UpdatedAt = now
		if err := s.BusinessRepo.Upsert(ctx, seed); err != nil {
			s.Logger.Errorw("failed to seed business profile", "error", err, "user_id", seed.UserID)
		}
		s.cache.Set(ctx, key, seed, businessCacheTTL)
		return dto.NewBusinessResponse(seed), nil
	}
	if err != nil {
		return nil, err
	}

	merged := info.MergeDefaults()
	s.cache.Set(ctx, key, merged, businessCacheTTL)
	return dto.NewBusinessResponse(merged), nil
}

// SaveBusiness applies a partial update onto the stored profile. Fields
// absent from the request keep their stored values; the merged result is
// written back whole.
func (s *businessService) SaveBusiness(ctx context.Context, req *dto.SaveBusinessRequest) (*dto.SaveBusinessResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	info, err := s.BusinessRepo.Get(ctx)
	if ierr.IsNotFound(err) {
		// first write for this user; the record always carries at least
		// the session email, as the load-time seed would
		info = business.Defaults()
		info.UserID = types.GetUserID(ctx)
		info.Email = types.GetUserEmail(ctx)
		info.CreatedAt = now
	} else if err != nil {
		return nil, err
	}

	info.Apply(&req.Patch)
	info.UpdatedAt = now

	if err := s.BusinessRepo.Upsert(ctx, info); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cache.GenerateKey(cache.PrefixBusiness, info.UserID))

	return &dto.SaveBusinessResponse{
		Success: true,
		Message: "Business information saved successfully.",
	}, nil
}
