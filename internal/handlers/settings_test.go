package handlers

import (
	"testing"
	"time"

	"backend/internal/models"
)

func TestBuildSettingsUpdateNestedMerge(t *testing.T) {
	set := buildSettingsUpdate(SettingsUpdateRequest{
		HomeHero: &HomeHeroPatch{Title: strPtr("X")},
	})

	if len(set) != 1 {
		t.Fatalf("expected one dotted key, got %v", set)
	}
	if set["homeHero.title"] != "X" {
		t.Fatalf("expected homeHero.title=X, got %v", set)
	}
	// Siblings are never written, so subtitle and description survive a PUT
	// that only carries the title.
	if _, ok := set["homeHero.subtitle"]; ok {
		t.Fatal("subtitle must not be touched")
	}
	if _, ok := set["homeHero.description"]; ok {
		t.Fatal("description must not be touched")
	}
}

func TestBuildSettingsUpdateArraysReplaceWholesale(t *testing.T) {
	posters := []string{"/uploads/a.png"}
	set := buildSettingsUpdate(SettingsUpdateRequest{Posters: &posters})

	got, ok := set["posters"].([]string)
	if !ok || len(got) != 1 || got[0] != "/uploads/a.png" {
		t.Fatalf("expected posters array to replace wholesale, got %v", set["posters"])
	}
}

func TestBuildSettingsUpdateEmptyArrayIsWritten(t *testing.T) {
	videos := []string{}
	set := buildSettingsUpdate(SettingsUpdateRequest{TrendingVideos: &videos})

	got, ok := set["trendingVideos"].([]string)
	if !ok || len(got) != 0 {
		t.Fatalf("expected explicit empty array to clear the field, got %v", set["trendingVideos"])
	}
}

func TestBuildSettingsUpdateEmptyPayload(t *testing.T) {
	if set := buildSettingsUpdate(SettingsUpdateRequest{}); len(set) != 0 {
		t.Fatalf("expected empty $set, got %v", set)
	}
}

func TestDefaultSiteSettings(t *testing.T) {
	now := time.Now()
	defaults := defaultSiteSettings(now)

	if defaults.ID != models.SiteSettingsID {
		t.Fatalf("expected well-known id %q, got %q", models.SiteSettingsID, defaults.ID)
	}
	if defaults.HomeHero.Title == "" || defaults.NewsletterSection.ButtonText == "" {
		t.Fatal("expected non-empty hero and newsletter defaults")
	}
	if defaults.HeroImages == nil || defaults.Posters == nil || defaults.Brands == nil {
		t.Fatal("array fields must initialize empty, not nil")
	}
}
