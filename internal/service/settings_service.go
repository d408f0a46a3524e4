package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/repository"
	"github.com/admin-edit-comment/internal/validation"
	"github.com/rs/zerolog"
)

// settingsService reads and writes the enabled content types option
type settingsService struct {
	options repository.OptionRepository
	posts   repository.PostRepository
	sites   repository.SiteRepository
	log     zerolog.Logger
}

func newSettingsService(options repository.OptionRepository, posts repository.PostRepository, sites repository.SiteRepository, log zerolog.Logger) *settingsService {
	return &settingsService{
		options: options,
		posts:   posts,
		sites:   sites,
		log:     log.With().Str("component", "settings").Logger(),
	}
}

// Get returns the settings page model for a site
func (s *settingsService) Get(ctx context.Context, siteID int64) (*models.Settings, error) {
	enabled, err := s.EnabledTypes(ctx, siteID)
	if err != nil {
		return nil, err
	}
	available, err := s.AvailableTypes(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return &models.Settings{
		SiteID:         siteID,
		EnabledTypes:   enabled,
		AvailableTypes: available,
	}, nil
}

// EnabledTypes returns the content types showing the comment box.
// The defaults apply until the option is saved for the first time.
func (s *settingsService) EnabledTypes(ctx context.Context, siteID int64) ([]string, error) {
	const op = "service.settings.EnabledTypes"

	values, found, err := s.options.Get(ctx, siteID, models.OptionsKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrStore, err))
	}
	if !found {
		return slices.Clone(models.DefaultActivePostTypes), nil
	}
	return values, nil
}

// IsEnabled reports whether postType shows the comment box
func (s *settingsService) IsEnabled(ctx context.Context, siteID int64, postType string) (bool, error) {
	if postType == models.CommentPostType || postType == models.AttachmentPostType {
		return false, nil
	}
	enabled, err := s.EnabledTypes(ctx, siteID)
	if err != nil {
		return false, err
	}
	return slices.Contains(enabled, postType), nil
}

// SetEnabledTypes validates and stores the enabled content types
func (s *settingsService) SetEnabledTypes(ctx context.Context, siteID int64, types []string) ([]string, error) {
	const op = "service.settings.SetEnabledTypes"

	if errs := validation.ValidatePostTypes(types); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrValidation, errs[0].Error())
	}

	normalized := slices.Clone(types)
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)
	if normalized == nil {
		normalized = []string{}
	}

	if err := s.options.Set(ctx, siteID, models.OptionsKey, normalized); err != nil {
		s.log.Error().Err(err).Int64("site_id", siteID).Msg("Failed to save settings")
		return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrStore, err))
	}

	s.log.Info().Int64("site_id", siteID).Strs("enabled_types", normalized).Msg("Settings saved")
	return normalized, nil
}

// AvailableTypes lists the content types that may be enabled on a site
func (s *settingsService) AvailableTypes(ctx context.Context, siteID int64) ([]string, error) {
	const op = "service.settings.AvailableTypes"

	stored, err := s.posts.ListTypes(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrStore, err))
	}

	types := append(slices.Clone(models.DefaultActivePostTypes), stored...)
	types = slices.DeleteFunc(types, func(t string) bool {
		return t == models.CommentPostType || t == models.AttachmentPostType
	})
	slices.Sort(types)
	return slices.Compact(types), nil
}

// Uninstall removes the settings option from every site and reports how many were removed
func (s *settingsService) Uninstall(ctx context.Context) (int, error) {
	const op = "service.settings.Uninstall"

	siteIDs, err := s.sites.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, errors.Join(ErrStore, err))
	}

	removed := 0
	var errs []error
	for _, siteID := range siteIDs {
		deleted, err := s.options.Delete(ctx, siteID, models.OptionsKey)
		if err != nil {
			s.log.Error().Err(err).Int64("site_id", siteID).Msg("Failed to remove settings")
			errs = append(errs, fmt.Errorf("site %d: %w", siteID, err))
			continue
		}
		if deleted {
			removed++
		}
	}

	s.log.Info().Int("sites", len(siteIDs)).Int("removed", removed).Msg("Settings removed")
	if len(errs) > 0 {
		return removed, fmt.Errorf("%s: %w", op, errors.Join(append([]error{ErrStore}, errs...)...))
	}
	return removed, nil
}
