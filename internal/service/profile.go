package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
)

// ProfileUpdate changes only the non-nil fields.
type ProfileUpdate struct {
	Username *string
	Email    *string  `validate:"omitempty,email"`
	Age      *int     `validate:"omitempty,gt=0,lte=150"`
	Weight   *float64 `validate:"omitempty,gt=0"`
	Height   *float64 `validate:"omitempty,gt=0"`
}

// InitProfile creates the profile when it does not exist yet and reports
// whether it did.
func (s *Service) InitProfile(ctx context.Context, userID, username, email string) (bool, error) {
	if err := validateUser(userID); err != nil {
		return false, err
	}
	_, ok, err := s.profile(ctx, userID)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if strings.TrimSpace(username) == "" {
		username = userID
	}
	goals := s.opts.DefaultGoals
	water := s.opts.DefaultWaterGoal
	p := model.UserProfile{
		Username:         strings.TrimSpace(username),
		Email:            strings.TrimSpace(email),
		WaterGoal:        &water,
		NutritionalGoals: &goals,
	}
	if p.Email != "" {
		if err := check(ProfileUpdate{Email: &p.Email}); err != nil {
			return false, err
		}
	}
	if err := s.store.Write(ctx, userPath(rootUsers, userID), p); err != nil {
		return false, fmt.Errorf("create profile: %w", err)
	}
	s.log.Info("profile created", logFields(userID, "", nil)...)
	return true, nil
}

// Profile returns the stored profile or ErrNotFound.
func (s *Service) Profile(ctx context.Context, userID string) (model.UserProfile, error) {
	if err := validateUser(userID); err != nil {
		return model.UserProfile{}, err
	}
	p, ok, err := s.profile(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}
	if !ok {
		return model.UserProfile{}, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return p, nil
}

func (s *Service) profile(ctx context.Context, userID string) (model.UserProfile, bool, error) {
	p, ok, err := docstore.Get[model.UserProfile](ctx, s.store, userPath(rootUsers, userID))
	if err != nil {
		return model.UserProfile{}, false, fmt.Errorf("load profile: %w", err)
	}
	return p, ok, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (model.UserProfile, error) {
	if err := validateUser(userID); err != nil {
		return model.UserProfile{}, err
	}
	if in.Username != nil {
		v := strings.TrimSpace(*in.Username)
		if v == "" {
			return model.UserProfile{}, invalid("username", "is required")
		}
		in.Username = &v
	}
	if err := check(in); err != nil {
		return model.UserProfile{}, err
	}
	fields := map[string]any{}
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Email != nil {
		fields["email"] = strings.TrimSpace(*in.Email)
	}
	if in.Age != nil {
		fields["age"] = *in.Age
	}
	if in.Weight != nil {
		fields["weight"] = *in.Weight
	}
	if in.Height != nil {
		fields["height"] = *in.Height
	}
	if len(fields) == 0 {
		return model.UserProfile{}, invalid("", "no profile fields to update")
	}
	if err := s.store.Patch(ctx, userPath(rootUsers, userID), fields); err != nil {
		return model.UserProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return s.Profile(ctx, userID)
}
