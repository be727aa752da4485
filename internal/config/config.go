package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	str2duration "github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if len(path) != 0 {
		expandedPath, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}
		b, err := os.ReadFile(expandedPath)
		if err != nil {
			return nil, err
		}

		b, err = expandEnvVars(b)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(b, config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

const (
	httpListenAddrKey    = "RENTD_HTTP_LISTEN_ADDR"
	httpsListenAddrKey   = "RENTD_HTTPS_LISTEN_ADDR"
	metricsListenAddrKey = "RENTD_METRICS_LISTEN_ADDR"
	serverUrlKey         = "RENTD_SERVER_URL"
	databaseTypeKey      = "RENTD_DB_TYPE"
	databaseUrlKey       = "RENTD_DB_URL"
	tlsDisableKey        = "RENTD_TLS_DISABLE"
	tlsCertFileKey       = "RENTD_TLS_CERT_FILE"
	tlsKeyFileKey        = "RENTD_TLS_KEY_FILE"
	tlsAcmeEnabledKey    = "RENTD_TLS_ACME"
	tlsAcmeEmailKey      = "RENTD_TLS_ACME_EMAIL"
	tlsAcmeCAKey         = "RENTD_TLS_ACME_CA"
	tlsAcmePathKey       = "RENTD_TLS_ACME_PATH"
	loggingLevelKey      = "RENTD_LOGGING_LEVEL"
	loggingFormatKey     = "RENTD_LOGGING_FORMAT"
	loggingFileKey       = "RENTD_LOGGING_FILE"
	jwtSecretKey         = "RENTD_JWT_SECRET"
	jwtExpirationKey     = "RENTD_JWT_EXPIRATION"
	adminUsernameKey     = "RENTD_ADMIN_USERNAME"
	adminPasswordKey     = "RENTD_ADMIN_PASSWORD"
	adminFullNameKey     = "RENTD_ADMIN_FULL_NAME"
	invitationTTLKey     = "RENTD_INVITATION_TTL"
	emailSmtpAddrKey     = "RENTD_EMAIL_SMTP_ADDR"
	emailFromKey         = "RENTD_EMAIL_FROM"
	emailUsernameKey     = "RENTD_EMAIL_USERNAME"
	emailPasswordKey     = "RENTD_EMAIL_PASSWORD"
)

func defaultConfig() *Config {
	return &Config{
		HttpListenAddr:    GetString(httpListenAddrKey, ":8080"),
		HttpsListenAddr:   GetString(httpsListenAddrKey, ":8443"),
		MetricsListenAddr: GetString(metricsListenAddrKey, ":8081"),
		ServerUrl:         GetString(serverUrlKey, "https://localhost:8443"),
		Database: Database{
			Type: GetString(databaseTypeKey, "sqlite"),
			Url:  GetString(databaseUrlKey, "rentd.db"),
		},
		Tls: Tls{
			Disable:     GetBool(tlsDisableKey, false),
			CertFile:    GetString(tlsCertFileKey, ""),
			KeyFile:     GetString(tlsKeyFileKey, ""),
			AcmeEnabled: GetBool(tlsAcmeEnabledKey, false),
			AcmeEmail:   GetString(tlsAcmeEmailKey, ""),
			AcmeCA:      GetString(tlsAcmeCAKey, ""),
			AcmePath:    GetString(tlsAcmePathKey, ""),
		},
		Jwt: Jwt{
			Secret:     GetString(jwtSecretKey, ""),
			Expiration: GetString(jwtExpirationKey, "24h"),
		},
		Admin: Admin{
			Username: GetString(adminUsernameKey, "admin"),
			Password: GetString(adminPasswordKey, ""),
			FullName: GetString(adminFullNameKey, "Administrator"),
		},
		Invitations: Invitations{
			TTL: GetString(invitationTTLKey, "7d"),
		},
		Email: Email{
			SmtpAddr: GetString(emailSmtpAddrKey, ""),
			From:     GetString(emailFromKey, ""),
			Username: GetString(emailUsernameKey, ""),
			Password: GetString(emailPasswordKey, ""),
		},
		Logging: Logging{
			Level:  GetString(loggingLevelKey, "info"),
			Format: GetString(loggingFormatKey, ""),
			File:   GetString(loggingFileKey, ""),
		},
	}
}

type Config struct {
	HttpListenAddr    string      `yaml:"http_listen_addr,omitempty"`
	HttpsListenAddr   string      `yaml:"https_listen_addr,omitempty"`
	MetricsListenAddr string      `yaml:"metrics_listen_addr,omitempty"`
	ServerUrl         string      `yaml:"server_url,omitempty"`
	Tls               Tls         `yaml:"tls,omitempty"`
	Logging           Logging     `yaml:"logging,omitempty"`
	Database          Database    `yaml:"database,omitempty"`
	Jwt               Jwt         `yaml:"jwt,omitempty"`
	Admin             Admin       `yaml:"admin,omitempty"`
	Invitations       Invitations `yaml:"invitations,omitempty"`
	Email             Email       `yaml:"email,omitempty"`
}

type Tls struct {
	Disable     bool   `yaml:"disable"`
	CertFile    string `yaml:"cert_file,omitempty"`
	KeyFile     string `yaml:"key_file,omitempty"`
	AcmeEnabled bool   `yaml:"acme_enabled,omitempty"`
	AcmeEmail   string `yaml:"acme_email,omitempty"`
	AcmeCA      string `yaml:"acme_ca,omitempty"`
	AcmePath    string `yaml:"acme_path,omitempty"`
}

type Logging struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

type Database struct {
	Type string `yaml:"type,omitempty"`
	Url  string `yaml:"url,omitempty"`
}

type Jwt struct {
	Secret     string `yaml:"secret,omitempty"`
	Expiration string `yaml:"expiration,omitempty"`
}

type Admin struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	FullName string `yaml:"full_name,omitempty"`
}

type Invitations struct {
	TTL string `yaml:"ttl,omitempty"`
}

type Email struct {
	SmtpAddr string `yaml:"smtp_addr,omitempty"`
	From     string `yaml:"from,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

func (j Jwt) ExpirationDuration() (time.Duration, error) {
	return str2duration.ParseDuration(j.Expiration)
}

func (i Invitations) TTLDuration() (time.Duration, error) {
	return str2duration.ParseDuration(i.TTL)
}

func (e Email) Enabled() bool {
	return e.SmtpAddr != "" && e.From != ""
}

func (c *Config) CreateUrl(format string, a ...interface{}) string {
	path := fmt.Sprintf(format, a...)
	return strings.TrimSuffix(c.ServerUrl, "/") + "/" + strings.TrimPrefix(path, "/")
}

func (c *Config) Validate() error {
	if c.Jwt.Secret == "" {
		return fmt.Errorf("jwt secret is not configured")
	}
	if _, err := c.Jwt.ExpirationDuration(); err != nil {
		return fmt.Errorf("invalid jwt expiration: %w", err)
	}
	if _, err := c.Invitations.TTLDuration(); err != nil {
		return fmt.Errorf("invalid invitation ttl: %w", err)
	}
	return nil
}
