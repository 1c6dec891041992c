package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where cookbot stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// Provider configuration
	GeminiAPIKey string // COOKBOT_GEMINI_API_KEY
	GeminiModel  string // COOKBOT_GEMINI_MODEL (default: gemini-2.5-flash)

	// Contact relay configuration
	SMTPHost       string // COOKBOT_SMTP_HOST (default: smtp.gmail.com)
	SMTPPort       int    // COOKBOT_SMTP_PORT (default: 465)
	SenderEmail    string // COOKBOT_SENDER_EMAIL
	SenderPassword string // COOKBOT_SENDER_PASSWORD
	ReceiverEmail  string // COOKBOT_RECEIVER_EMAIL (default: sender)

	// AllowedOrigins is the list of origins allowed by CORS.
	AllowedOrigins []string // COOKBOT_ALLOWED_ORIGINS (comma-separated)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsChatEnabled reports whether the provider key is configured. Without it the
// chat route answers with a deterministic configuration error.
func (p *Profile) IsChatEnabled() bool {
	return p.GeminiAPIKey != ""
}

// IsContactEnabled reports whether the SMTP relay credentials are configured.
func (p *Profile) IsContactEnabled() bool {
	return p.SenderEmail != "" && p.SenderPassword != "" && p.ReceiverEmail != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from COOKBOT_* environment variables.
func (p *Profile) FromEnv() {
	p.GeminiAPIKey = os.Getenv("COOKBOT_GEMINI_API_KEY")
	p.GeminiModel = getEnvOrDefault("COOKBOT_GEMINI_MODEL", "gemini-2.5-flash")

	p.SMTPHost = getEnvOrDefault("COOKBOT_SMTP_HOST", "smtp.gmail.com")
	if port, err := strconv.Atoi(getEnvOrDefault("COOKBOT_SMTP_PORT", "465")); err == nil {
		p.SMTPPort = port
	}
	p.SenderEmail = os.Getenv("COOKBOT_SENDER_EMAIL")
	p.SenderPassword = os.Getenv("COOKBOT_SENDER_PASSWORD")
	p.ReceiverEmail = getEnvOrDefault("COOKBOT_RECEIVER_EMAIL", p.SenderEmail)

	if origins := os.Getenv("COOKBOT_ALLOWED_ORIGINS"); origins != "" {
		p.AllowedOrigins = p.AllowedOrigins[:0]
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				p.AllowedOrigins = append(p.AllowedOrigins, origin)
			}
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}

	if p.Driver == "sqlite" {
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			return err
		}
		p.Data = dataDir
		if p.DSN == "" {
			dbFile := fmt.Sprintf("cookbot_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		}
	} else if p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}

	return nil
}
