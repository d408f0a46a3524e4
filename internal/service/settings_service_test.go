package service_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/admin-edit-comment/internal/config"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/service"
)

func TestSettingsService_Defaults(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	enabled, err := h.services.Settings.EnabledTypes(ctx, 1)
	if err != nil {
		t.Fatalf("EnabledTypes failed: %v", err)
	}
	if !slices.Equal(enabled, []string{"post", "page"}) {
		t.Errorf("Expected default [post page], got %v", enabled)
	}

	for postType, want := range map[string]bool{
		"post":                    true,
		"page":                    true,
		"product":                 false,
		models.CommentPostType:    false,
		models.AttachmentPostType: false,
	} {
		got, err := h.services.Settings.IsEnabled(ctx, 1, postType)
		if err != nil {
			t.Fatalf("IsEnabled failed: %v", err)
		}
		if got != want {
			t.Errorf("IsEnabled(%q) = %v, want %v", postType, got, want)
		}
	}
}

func TestSettingsService_SetEnabledTypes(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()

	saved, err := h.services.Settings.SetEnabledTypes(ctx, 1, []string{"product", "post", "product"})
	if err != nil {
		t.Fatalf("SetEnabledTypes failed: %v", err)
	}
	if !slices.Equal(saved, []string{"post", "product"}) {
		t.Errorf("Expected sorted unique types, got %v", saved)
	}

	enabled, _ := h.services.Settings.EnabledTypes(ctx, 1)
	if !slices.Equal(enabled, saved) {
		t.Errorf("Expected stored %v, got %v", saved, enabled)
	}

	// Saving an empty selection disables the box everywhere instead of restoring defaults
	if _, err := h.services.Settings.SetEnabledTypes(ctx, 1, nil); err != nil {
		t.Fatalf("SetEnabledTypes failed: %v", err)
	}
	if ok, _ := h.services.Settings.IsEnabled(ctx, 1, "post"); ok {
		t.Error("post should be disabled after saving an empty selection")
	}
}

func TestSettingsService_SetEnabledTypes_Invalid(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})

	for _, types := range [][]string{
		{models.CommentPostType},
		{"attachment"},
		{"Bad Type"},
	} {
		_, err := h.services.Settings.SetEnabledTypes(context.Background(), 1, types)
		if !errors.Is(err, service.ErrValidation) {
			t.Errorf("SetEnabledTypes(%v): expected ErrValidation, got %v", types, err)
		}
	}
	if len(h.options.Options) != 0 {
		t.Errorf("Nothing should be stored, got %v", h.options.Options)
	}
}

func TestSettingsService_AvailableTypes(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()
	h.posts.AddPost(&models.Post{ID: 70, Type: "product"})
	h.posts.AddPost(&models.Post{ID: 71, Type: models.AttachmentPostType})
	h.services.Comment.Create(ctx, 42, h.editor, "note")

	available, err := h.services.Settings.AvailableTypes(ctx, 1)
	if err != nil {
		t.Fatalf("AvailableTypes failed: %v", err)
	}
	if !slices.Equal(available, []string{"page", "post", "product"}) {
		t.Errorf("Expected [page post product], got %v", available)
	}
}

func TestSettingsService_Uninstall(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	ctx := context.Background()
	h.sites.IDs = []int64{1, 2, 3}

	h.services.Settings.SetEnabledTypes(ctx, 1, []string{"post"})
	h.services.Settings.SetEnabledTypes(ctx, 3, []string{"page"})

	removed, err := h.services.Settings.Uninstall(ctx)
	if err != nil {
		t.Fatalf("Uninstall failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 options removed, got %d", removed)
	}
	for _, siteID := range h.sites.IDs {
		if _, found, _ := h.options.Get(ctx, siteID, models.OptionsKey); found {
			t.Errorf("Option still present for site %d", siteID)
		}
	}

	// Sites fall back to the defaults afterwards
	enabled, _ := h.services.Settings.EnabledTypes(ctx, 1)
	if !slices.Equal(enabled, models.DefaultActivePostTypes) {
		t.Errorf("Expected defaults after uninstall, got %v", enabled)
	}
}

func TestSettingsService_UninstallStoreError(t *testing.T) {
	h := newTestHarness(t, config.CommentsConfig{})
	h.options.DeleteError = errors.New("read-only transaction")

	if _, err := h.services.Settings.Uninstall(context.Background()); !errors.Is(err, service.ErrStore) {
		t.Errorf("Expected ErrStore, got %v", err)
	}
}
