package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const maxDisplayNameLength = 80

// ProfileService reads and updates per-user preferences.
type ProfileService interface {
	Get(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, userID int64, displayName string, theme domain.Theme) (*domain.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

// Get returns the stored profile, or the defaults when none was saved yet.
func (s *profileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.Profile{UserID: userID, Theme: domain.ThemeSystem}, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID int64, displayName string, theme domain.Theme) (*domain.Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if len(displayName) > maxDisplayNameLength {
		return nil, fmt.Errorf("%w: display name is too long", ErrInvalidInput)
	}
	if theme == "" {
		theme = domain.ThemeSystem
	}
	if !theme.Valid() {
		return nil, fmt.Errorf("%w: theme must be light, dark or system", ErrInvalidInput)
	}
	profile := &domain.Profile{UserID: userID, DisplayName: displayName, Theme: theme}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
