package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported storage backends.
const (
	DBTypeMongo    = "mongo"
	DBTypePostgres = "postgres"
	DBTypeMemory   = "memory"
)

// Supported quotation generators.
const (
	GeneratorSimulated = "simulated"
	GeneratorVertex    = "vertex"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	DBType          string
	MongoURI        string
	MongoDatabase   string
	DatabaseURL     string
	MigrationsPath  string
	RequestTimeout  time.Duration
	ClientURL       string
	AuthRateLimit   string
	JWTSecret       string
	JWTExpiry       time.Duration
	JWTIssuer       string
	PosthogAPIKey   string
	CompanyName     string
	CompanyTagline  string
	CompanyLogo     string
	PDFExport       bool
	PDFWatermark    bool
	ChromeExecPath  string
	QuotationEngine string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Vertex AI, used when QuotationEngine is "vertex"
	VertexProjectID string
	VertexRegion    string
	VertexModel     string

	// S3 compatible archive for exported PDFs. Disabled when ArchiveBucket is empty.
	ArchiveBucket          string
	ArchiveEndpoint        string
	ArchivePublicURL       string
	ArchiveAccessKeyID     string
	ArchiveSecretAccessKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "5000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DB_TYPE", DBTypeMongo)
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "invoice_generator")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("REQUEST_TIMEOUT", "15s")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "invoice-generator-app")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("COMPANY_NAME", "PRANAYUV TECHNOLOGIES PVT LTD")
	viper.SetDefault("COMPANY_TAGLINE", "Empowering Lives through Innovation")
	viper.SetDefault("COMPANY_LOGO", "PV")
	viper.SetDefault("PDF_EXPORT", true)
	viper.SetDefault("PDF_WATERMARK", true)
	viper.SetDefault("CHROME_EXEC_PATH", "")
	viper.SetDefault("QUOTATION_GENERATOR", GeneratorSimulated)
	viper.SetDefault("VERTEX_PROJECT_ID", "")
	viper.SetDefault("VERTEX_REGION", "us-central1")
	viper.SetDefault("VERTEX_MODEL", "gemini-1.5-pro")
	viper.SetDefault("ARCHIVE_BUCKET", "")
	viper.SetDefault("ARCHIVE_ENDPOINT", "")
	viper.SetDefault("ARCHIVE_PUBLIC_URL", "")
	viper.SetDefault("ARCHIVE_ACCESS_KEY_ID", "")
	viper.SetDefault("ARCHIVE_SECRET_ACCESS_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "5000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DBType = strings.ToLower(viper.GetString("DB_TYPE"))
	switch cfg.DBType {
	case DBTypeMongo, DBTypePostgres, DBTypeMemory:
	default:
		log.Printf("Warning: Invalid value for DB_TYPE ('%s'). Defaulting to %s.\n", cfg.DBType, DBTypeMongo)
		cfg.DBType = DBTypeMongo
	}
	cfg.MongoURI = viper.GetString("MONGODB_URI")
	cfg.MongoDatabase = viper.GetString("MONGODB_DATABASE")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DBType == DBTypePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.RequestTimeout = parseDuration("REQUEST_TIMEOUT", 15*time.Second)
	cfg.ClientURL = viper.GetString("CLIENT_URL")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiry = parseDuration("JWT_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "invoice-generator-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.CompanyName = viper.GetString("COMPANY_NAME")
	cfg.CompanyTagline = viper.GetString("COMPANY_TAGLINE")
	cfg.CompanyLogo = viper.GetString("COMPANY_LOGO")
	if len([]rune(cfg.CompanyLogo)) > 3 {
		log.Printf("Warning: COMPANY_LOGO ('%s') is longer than 3 characters. Truncating.\n", cfg.CompanyLogo)
		cfg.CompanyLogo = string([]rune(cfg.CompanyLogo)[:3])
	}

	cfg.PDFExport = viper.GetBool("PDF_EXPORT")
	cfg.PDFWatermark = viper.GetBool("PDF_WATERMARK")
	cfg.ChromeExecPath = viper.GetString("CHROME_EXEC_PATH")

	cfg.QuotationEngine = strings.ToLower(viper.GetString("QUOTATION_GENERATOR"))
	cfg.VertexProjectID = viper.GetString("VERTEX_PROJECT_ID")
	cfg.VertexRegion = viper.GetString("VERTEX_REGION")
	cfg.VertexModel = viper.GetString("VERTEX_MODEL")
	if cfg.QuotationEngine == GeneratorVertex && cfg.VertexProjectID == "" {
		log.Println("Warning: QUOTATION_GENERATOR is vertex but VERTEX_PROJECT_ID is not set. Falling back to simulated.")
		cfg.QuotationEngine = GeneratorSimulated
	}
	if cfg.QuotationEngine != GeneratorVertex {
		cfg.QuotationEngine = GeneratorSimulated
	}

	cfg.ArchiveBucket = viper.GetString("ARCHIVE_BUCKET")
	cfg.ArchiveEndpoint = viper.GetString("ARCHIVE_ENDPOINT")
	cfg.ArchivePublicURL = viper.GetString("ARCHIVE_PUBLIC_URL")
	cfg.ArchiveAccessKeyID = viper.GetString("ARCHIVE_ACCESS_KEY_ID")
	cfg.ArchiveSecretAccessKey = viper.GetString("ARCHIVE_SECRET_ACCESS_KEY")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
