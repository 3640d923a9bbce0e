package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Google    GoogleConfig
	DeepSeek  DeepSeekConfig
	Twilio    TwilioConfig
	Search    SearchConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Path string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type GoogleConfig struct {
	MapsAPIKey string
}

type DeepSeekConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// SearchConfig carries the provider-search tuning knobs. The defaults are
// undocumented tuning, so they are configurable rather than baked in.
type SearchConfig struct {
	CacheHitThreshold int
	DefaultRadius     int
	GoogleReviewTTL   time.Duration
	RedditReviewTTL   time.Duration
	GeocodeCacheTTL   time.Duration
}

type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine; everything can come from the environment.
	_ = viper.ReadInConfig()

	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_PATH", "healthspot.db")
	viper.SetDefault("MONGODB_DATABASE", "healthspot")
	viper.SetDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com")
	viper.SetDefault("DEEPSEEK_MODEL", "deepseek-chat")
	viper.SetDefault("SEARCH_CACHE_HIT_THRESHOLD", 10)
	viper.SetDefault("SEARCH_DEFAULT_RADIUS", 5000)
	viper.SetDefault("GOOGLE_REVIEW_TTL", "168h")
	viper.SetDefault("REDDIT_REVIEW_TTL", "720h")
	viper.SetDefault("GEOCODE_CACHE_TTL", "720h")
	viper.SetDefault("RATE_LIMIT_WINDOW", "60s")
	viper.SetDefault("RATE_LIMIT_MAX_REQUESTS", 60)

	googleReviewTTL, err := time.ParseDuration(viper.GetString("GOOGLE_REVIEW_TTL"))
	if err != nil {
		googleReviewTTL = 7 * 24 * time.Hour
	}

	redditReviewTTL, err := time.ParseDuration(viper.GetString("REDDIT_REVIEW_TTL"))
	if err != nil {
		redditReviewTTL = 30 * 24 * time.Hour
	}

	geocodeCacheTTL, err := time.ParseDuration(viper.GetString("GEOCODE_CACHE_TTL"))
	if err != nil {
		geocodeCacheTTL = 30 * 24 * time.Hour
	}

	rateLimitWindow, err := time.ParseDuration(viper.GetString("RATE_LIMIT_WINDOW"))
	if err != nil {
		rateLimitWindow = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Path: viper.GetString("DB_PATH"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Google: GoogleConfig{
			MapsAPIKey: viper.GetString("GOOGLE_MAPS_API_KEY"),
		},
		DeepSeek: DeepSeekConfig{
			APIKey:  viper.GetString("DEEPSEEK_API_KEY"),
			BaseURL: viper.GetString("DEEPSEEK_BASE_URL"),
			Model:   viper.GetString("DEEPSEEK_MODEL"),
		},
		Twilio: TwilioConfig{
			AccountSID:  viper.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:   viper.GetString("TWILIO_AUTH_TOKEN"),
			PhoneNumber: viper.GetString("TWILIO_PHONE_NUMBER"),
		},
		Search: SearchConfig{
			CacheHitThreshold: viper.GetInt("SEARCH_CACHE_HIT_THRESHOLD"),
			DefaultRadius:     viper.GetInt("SEARCH_DEFAULT_RADIUS"),
			GoogleReviewTTL:   googleReviewTTL,
			RedditReviewTTL:   redditReviewTTL,
			GeocodeCacheTTL:   geocodeCacheTTL,
		},
		RateLimit: RateLimitConfig{
			Window:      rateLimitWindow,
			MaxRequests: viper.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		},
	}

	return config, nil
}
