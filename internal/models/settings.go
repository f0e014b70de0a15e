package models

import "time"

// SiteSettingsID is the well-known _id of the singleton settings document.
// Get-or-create goes through an upsert on this key rather than "find first
// document of this type".
const SiteSettingsID = "site"

type HomeHero struct {
	Title       string `bson:"title" json:"title"`
	Subtitle    string `bson:"subtitle" json:"subtitle"`
	Description string `bson:"description" json:"description"`
}

type AboutHero struct {
	Tagline     string `bson:"tagline" json:"tagline"`
	Title       string `bson:"title" json:"title"`
	TitleSuffix string `bson:"titleSuffix" json:"titleSuffix"`
}

type LoadingPage struct {
	Text     string `bson:"text" json:"text"`
	ImageURL string `bson:"imageUrl" json:"imageUrl"`
}

type NewsletterSection struct {
	Title      string `bson:"title" json:"title"`
	Tagline    string `bson:"tagline" json:"tagline"`
	ButtonText string `bson:"buttonText" json:"buttonText"`
}

type RangeItem struct {
	Title string `bson:"title" json:"title"`
	Image string `bson:"image" json:"image"`
}

type Feature struct {
	Icon  string `bson:"icon" json:"icon"`
	Title string `bson:"title" json:"title"`
	Desc  string `bson:"desc" json:"desc"`
}

// SiteSettings is the singleton CMS document driving the storefront's
// appearance. Arrays replace wholesale on update; the nested sub-objects
// merge key-by-key.
type SiteSettings struct {
	ID                string            `bson:"_id" json:"id"`
	HeroImages        []string          `bson:"heroImages" json:"heroImages"`
	MarqueeText       string            `bson:"marqueeText" json:"marqueeText"`
	HomeHero          HomeHero          `bson:"homeHero" json:"homeHero"`
	AboutHero         AboutHero         `bson:"aboutHero" json:"aboutHero"`
	LogoURL           string            `bson:"logoUrl" json:"logoUrl"`
	LoadingPage       LoadingPage       `bson:"loadingPage" json:"loadingPage"`
	NewsletterSection NewsletterSection `bson:"newsletterSection" json:"newsletterSection"`
	ShopOurRange      []RangeItem       `bson:"shopOurRange" json:"shopOurRange"`
	TrendingVideos    []string          `bson:"trendingVideos" json:"trendingVideos"`
	Posters           []string          `bson:"posters" json:"posters"`
	Features          []Feature         `bson:"features" json:"features"`
	Brands            []string          `bson:"brands" json:"brands"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt" json:"updatedAt"`
}
