package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host        string
	Port        int
	DBPath      string
	Seed        bool
	Debug       bool
	ServiceUser string
	Mail        MailConfig
}

type MailConfig struct {
	Host        string
	Port        int
	User        string
	Pass        string
	From        string
	SendTimeout time.Duration
}

// Credentialed reports whether SMTP credentials were provided. Without
// them the notification dispatcher runs disabled instead of failing
// startup.
func (mc MailConfig) Credentialed() bool {
	return mc.User != "" && mc.Pass != ""
}

// ParseFlags builds the configuration from command line flags, with
// mail settings and defaults taken from the environment (a local .env
// file is loaded first, when present).
func ParseFlags() (cfg Config, err error) {
	// missing .env is fine, the environment may be set by the host
	_ = godotenv.Load()

	flag.StringVar(&cfg.Host, "host", "0.0.0.0", "listen host name")
	flag.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "listen port number; the next free port is probed if taken")
	flag.StringVar(&cfg.DBPath, "db-url", envString("DB_URL", "career_survey.sqlite"), "path to SQLite3 DB file")
	flag.BoolVar(&cfg.Seed, "seed", false, "insert the default survey if missing")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.ServiceUser = envString("SERVICE_USER", "penguince")
	cfg.Mail = MailConfig{
		Host:        envString("EMAIL_HOST", "smtp.ethereal.email"),
		Port:        envInt("EMAIL_PORT", 587),
		User:        os.Getenv("EMAIL_USER"),
		Pass:        os.Getenv("EMAIL_PASS"),
		From:        envString("EMAIL_FROM", `"Career Services" <career-survey@example.com>`),
		SendTimeout: 10 * time.Second,
	}

	return
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
