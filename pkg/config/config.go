package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Collections holds the MongoDB collection names used by the forum
type Collections struct {
	Category       string
	Tags           string
	Posts          string
	Users          string
	Comments       string
	Announcements  string
	Reports        string
	CommentReports string
	Counters       string
}

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresUrl             string
	MongoURI                string
	DBName                  string
	Collections             Collections
	UseTransactions         bool

	JWTSecret    string
	TokenTTL     time.Duration
	CookieMaxAge time.Duration
	CORSOrigins  []string

	FeedPageSize     int
	FeedCommentLimit int
	FeedFilterMatch  string

	StripeSecretKey string
}

// Load reads the configuration from the environment, loading a .env file first when present
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "5000"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresUrl:             getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		DBName:                  getEnv("DB_NAME", "forum"),
		Collections: Collections{
			Category:       getEnv("COLLECTION_CATEGORY", "category"),
			Tags:           getEnv("COLLECTION_TAGS", "tags"),
			Posts:          getEnv("COLLECTION_POSTS", "posts"),
			Users:          getEnv("COLLECTION_USERS", "users"),
			Comments:       getEnv("COLLECTION_COMMENTS", "comments"),
			Announcements:  getEnv("COLLECTION_ANNOUNCEMENTS", "announcements"),
			Reports:        getEnv("COLLECTION_REPORTS", "reports"),
			CommentReports: getEnv("COLLECTION_COMMENT_REPORTS", "commentReports"),
			Counters:       getEnv("COLLECTION_COUNTERS", "counters"),
		},
		UseTransactions: getEnvBool("MONGO_TRANSACTIONS", false),

		JWTSecret:    getEnv("ACCESS_TOKEN_SECRET", getEnv("JWT_SECRET", "")),
		TokenTTL:     getEnvDuration("JWT_TTL", 5*time.Hour),
		CookieMaxAge: getEnvDuration("COOKIE_MAX_AGE", 30*24*time.Hour),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,https://forum-website-pi.vercel.app")),

		FeedPageSize:     getEnvInt("FEED_PAGE_SIZE", 5),
		FeedCommentLimit: getEnvInt("FEED_COMMENT_LIMIT", 3),
		FeedFilterMatch:  getEnv("FEED_FILTER_MATCH", "any"),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
	}
}

// IsProduction reports whether cookies must be sent cross-site
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
