package config

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FEED_PAGE_SIZE", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("MONGO_TRANSACTIONS", "")

	cfg := Load()
	assert.Equal(t, cfg.Port, "5000")
	assert.Equal(t, cfg.FeedPageSize, 5)
	assert.Equal(t, cfg.FeedCommentLimit, 3)
	assert.Equal(t, cfg.FeedFilterMatch, "any")
	assert.Equal(t, cfg.TokenTTL, 5*time.Hour)
	assert.Equal(t, cfg.CookieMaxAge, 30*24*time.Hour)
	assert.Equal(t, cfg.UseTransactions, false)
	assert.DeepEqual(t, cfg.CORSOrigins, []string{"http://localhost:5173", "https://forum-website-pi.vercel.app"})
	assert.Equal(t, cfg.Collections.Users, "users")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("FEED_PAGE_SIZE", "10")
	t.Setenv("FEED_COMMENT_LIMIT", "-4")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("MONGO_TRANSACTIONS", "true")

	cfg := Load()
	assert.Assert(t, cfg.IsProduction())
	assert.Equal(t, cfg.FeedPageSize, 10)
	assert.Equal(t, cfg.FeedCommentLimit, 3, "non-positive values fall back to the default")
	assert.Equal(t, cfg.TokenTTL, 90*time.Minute)
	assert.DeepEqual(t, cfg.CORSOrigins, []string{"https://a.example", "https://b.example"})
	assert.Assert(t, cfg.UseTransactions)
}
