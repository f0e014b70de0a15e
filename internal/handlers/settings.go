package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// SettingsUpdateRequest mirrors the settings document with pointer fields:
// only keys present in the payload are applied. Arrays replace wholesale,
// the nested sub-objects merge key-by-key through their own pointer structs.
type SettingsUpdateRequest struct {
	HeroImages        *[]string                `json:"heroImages"`
	MarqueeText       *string                  `json:"marqueeText"`
	HomeHero          *HomeHeroPatch           `json:"homeHero"`
	AboutHero         *AboutHeroPatch          `json:"aboutHero"`
	LogoURL           *string                  `json:"logoUrl"`
	LoadingPage       *LoadingPagePatch        `json:"loadingPage"`
	NewsletterSection *NewsletterSectionPatch  `json:"newsletterSection"`
	ShopOurRange      *[]models.RangeItem      `json:"shopOurRange"`
	TrendingVideos    *[]string                `json:"trendingVideos"`
	Posters           *[]string                `json:"posters"`
	Features          *[]models.Feature        `json:"features"`
	Brands            *[]string                `json:"brands"`
}

type HomeHeroPatch struct {
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Description *string `json:"description"`
}

type AboutHeroPatch struct {
	Tagline     *string `json:"tagline"`
	Title       *string `json:"title"`
	TitleSuffix *string `json:"titleSuffix"`
}

type LoadingPagePatch struct {
	Text     *string `json:"text"`
	ImageURL *string `json:"imageUrl"`
}

type NewsletterSectionPatch struct {
	Title      *string `json:"title"`
	Tagline    *string `json:"tagline"`
	ButtonText *string `json:"buttonText"`
}

// defaultSiteSettings carries the values a fresh storefront starts with.
func defaultSiteSettings(now time.Time) models.SiteSettings {
	return models.SiteSettings{
		ID:          models.SiteSettingsID,
		HeroImages:  []string{},
		MarqueeText: "",
		HomeHero: models.HomeHero{
			Title:       "From Soil to Soul.",
			Subtitle:    "Authentic. Unadulterated.",
			Description: "Eat like your ancestors, live for the future. Handcrafted essentials for the modern households.",
		},
		AboutHero: models.AboutHero{
			Tagline:     "The Captain's Log",
			Title:       "From High Seas to",
			TitleSuffix: "Wholesome Grains",
		},
		LogoURL: "/logo.png",
		LoadingPage: models.LoadingPage{
			Text:     "STOREFRONT",
			ImageURL: "/logo.png",
		},
		NewsletterSection: models.NewsletterSection{
			Title:      "Global distribution & Third-Party Manufacturing",
			Tagline:    "Partner with Us",
			ButtonText: "Subscribe",
		},
		ShopOurRange:   []models.RangeItem{},
		TrendingVideos: []string{},
		Posters:        []string{},
		Features:       []models.Feature{},
		Brands:         []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func getOrCreateSettings(ctx context.Context, db *mongo.Database) (models.SiteSettings, error) {
	defaults := defaultSiteSettings(time.Now())

	// _id comes from the filter on insert; it must not appear in $setOnInsert.
	onInsert := bson.M{
		"heroImages":        defaults.HeroImages,
		"marqueeText":       defaults.MarqueeText,
		"homeHero":          defaults.HomeHero,
		"aboutHero":         defaults.AboutHero,
		"logoUrl":           defaults.LogoURL,
		"loadingPage":       defaults.LoadingPage,
		"newsletterSection": defaults.NewsletterSection,
		"shopOurRange":      defaults.ShopOurRange,
		"trendingVideos":    defaults.TrendingVideos,
		"posters":           defaults.Posters,
		"features":          defaults.Features,
		"brands":            defaults.Brands,
		"createdAt":         defaults.CreatedAt,
		"updatedAt":         defaults.UpdatedAt,
	}

	var settings models.SiteSettings
	err := db.Collection("site_settings").FindOneAndUpdate(ctx,
		bson.M{"_id": models.SiteSettingsID},
		bson.M{"$setOnInsert": onInsert},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&settings)
	if err != nil {
		return models.SiteSettings{}, err
	}
	return settings, nil
}

func GetSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := getOrCreateSettings(ctx, db)
		if err != nil {
			log.Println("[SETTINGS] [ERROR] get failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SETTINGS", "Server Error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

func UpdateSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SettingsUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "SETTINGS", "Invalid body")
			return
		}

		set := buildSettingsUpdate(req)
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, "SETTINGS", "No fields to update")
			return
		}
		set["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Make sure the singleton exists before patching it, so a PUT against
		// a fresh deployment behaves the same as GET-then-PUT.
		if _, err := getOrCreateSettings(ctx, db); err != nil {
			log.Println("[SETTINGS] [ERROR] ensure singleton failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SETTINGS", "Server Error")
			return
		}

		var updated models.SiteSettings
		err := db.Collection("site_settings").FindOneAndUpdate(ctx,
			bson.M{"_id": models.SiteSettingsID},
			bson.M{"$set": set},
			updateReturnAfter(),
		).Decode(&updated)
		if err != nil {
			log.Println("[SETTINGS] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SETTINGS", "Server Error")
			return
		}

		log.Println("[SETTINGS] [INFO] settings updated")
		c.JSON(http.StatusOK, updated)
	}
}

// buildSettingsUpdate flattens the patch into dotted $set paths. Dotted paths
// are what make the sub-object merge shallow: an absent nested key is simply
// never written, so its stored value survives.
func buildSettingsUpdate(req SettingsUpdateRequest) bson.M {
	set := bson.M{}

	if req.HeroImages != nil {
		set["heroImages"] = *req.HeroImages
	}
	if req.MarqueeText != nil {
		set["marqueeText"] = *req.MarqueeText
	}
	if req.LogoURL != nil {
		set["logoUrl"] = *req.LogoURL
	}
	if req.ShopOurRange != nil {
		set["shopOurRange"] = *req.ShopOurRange
	}
	if req.TrendingVideos != nil {
		set["trendingVideos"] = *req.TrendingVideos
	}
	if req.Posters != nil {
		set["posters"] = *req.Posters
	}
	if req.Features != nil {
		set["features"] = *req.Features
	}
	if req.Brands != nil {
		set["brands"] = *req.Brands
	}

	if req.HomeHero != nil {
		if req.HomeHero.Title != nil {
			set["homeHero.title"] = *req.HomeHero.Title
		}
		if req.HomeHero.Subtitle != nil {
			set["homeHero.subtitle"] = *req.HomeHero.Subtitle
		}
		if req.HomeHero.Description != nil {
			set["homeHero.description"] = *req.HomeHero.Description
		}
	}

	if req.AboutHero != nil {
		if req.AboutHero.Tagline != nil {
			set["aboutHero.tagline"] = *req.AboutHero.Tagline
		}
		if req.AboutHero.Title != nil {
			set["aboutHero.title"] = *req.AboutHero.Title
		}
		if req.AboutHero.TitleSuffix != nil {
			set["aboutHero.titleSuffix"] = *req.AboutHero.TitleSuffix
		}
	}

	if req.LoadingPage != nil {
		if req.LoadingPage.Text != nil {
			set["loadingPage.text"] = *req.LoadingPage.Text
		}
		if req.LoadingPage.ImageURL != nil {
			set["loadingPage.imageUrl"] = *req.LoadingPage.ImageURL
		}
	}

	if req.NewsletterSection != nil {
		if req.NewsletterSection.Title != nil {
			set["newsletterSection.title"] = *req.NewsletterSection.Title
		}
		if req.NewsletterSection.Tagline != nil {
			set["newsletterSection.tagline"] = *req.NewsletterSection.Tagline
		}
		if req.NewsletterSection.ButtonText != nil {
			set["newsletterSection.buttonText"] = *req.NewsletterSection.ButtonText
		}
	}

	return set
}
