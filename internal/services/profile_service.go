package services

import (
	"context"
	"errors"
	"time"

	"github.com/avelyx/prepmate/internal/cache"
	"github.com/avelyx/prepmate/internal/models"
	pgrepo "github.com/avelyx/prepmate/internal/repositories/postgres"
	"github.com/avelyx/prepmate/internal/utils"
)

const profileCacheTTL = 5 * time.Minute

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
}

type profileService struct {
	profiles pgrepo.ProfileRepo
	cache    cache.Cache // optional
}

func NewProfileService(profiles pgrepo.ProfileRepo, c cache.Cache) ProfileService {
	return &profileService{profiles: profiles, cache: c}
}

func cacheKey(userID string) string { return "profile:" + userID }

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached models.Profile
		if hit, err := s.cache.GetJSON(ctx, cacheKey(userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey(userID), p, profileCacheTTL)
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, p *models.Profile) error {
	const op = "ProfileService.Upsert"

	if p == nil || p.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile.user_id is required", nil)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, cacheKey(p.UserID))
	}
	return nil
}
