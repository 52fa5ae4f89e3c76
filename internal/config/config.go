package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/viper"
)

// Environment variable names.
const (
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvChatKitWorkflowID = "CHATKIT_WORKFLOW_ID"
	EnvChatKitBaseURL    = "CHATKIT_BASE_URL"
	EnvChatKitTimeout    = "CHATKIT_TIMEOUT"

	EnvTableauClientID     = "TABLEAU_SERVER_CONAPP_CLIENT_ID"
	EnvTableauClientKeyID  = "TABLEAU_SERVER_CONAPP_CLIENT_KEY_ID"
	EnvTableauClientSecret = "TABLEAU_SERVER_CONAPP_CLIENT_SECRET"
	EnvTableauUser         = "TABLEAU_SERVER_CONAPP_USER"

	EnvPort           = "PORT"
	EnvAllowedOrigins = "ALLOWED_ORIGINS"
)

// Viper keys. Each one is bound to exactly one environment variable by BindEnv,
// and may also be set from a YAML config file.
const (
	PortKey           = "port"
	AllowedOriginsKey = "allowed_origins"

	ChatKitAPIKeyKey     = "chatkit.api_key"
	ChatKitWorkflowIDKey = "chatkit.workflow_id"
	ChatKitBaseURLKey    = "chatkit.base_url"
	ChatKitTimeoutKey    = "chatkit.timeout"

	TableauClientIDKey     = "tableau.client_id"
	TableauClientKeyIDKey  = "tableau.client_key_id"
	TableauClientSecretKey = "tableau.client_secret"
	TableauUserKey         = "tableau.user"
)

const (
	DefaultPort           = "3000"
	DefaultChatKitBaseURL = "https://api.openai.com"
	DefaultChatKitTimeout = 10 * time.Second
)

const redacted = "(redacted)"

var envBindings = [][2]string{
	{PortKey, EnvPort},
	{AllowedOriginsKey, EnvAllowedOrigins},
	{ChatKitAPIKeyKey, EnvOpenAIAPIKey},
	{ChatKitWorkflowIDKey, EnvChatKitWorkflowID},
	{ChatKitBaseURLKey, EnvChatKitBaseURL},
	{ChatKitTimeoutKey, EnvChatKitTimeout},
	{TableauClientIDKey, EnvTableauClientID},
	{TableauClientKeyIDKey, EnvTableauClientKeyID},
	{TableauClientSecretKey, EnvTableauClientSecret},
	{TableauUserKey, EnvTableauUser},
}

// Config is the process-wide configuration. It is built once at startup
// and never modified afterwards.
type Config struct {
	Port           string        `yaml:"port"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ChatKit        ChatKitConfig `yaml:"chatkit"`
	Tableau        TableauConfig `yaml:"tableau"`
}

// ChatKitConfig holds the credentials for the upstream session API.
type ChatKitConfig struct {
	// APIKey is sent as bearer token to the upstream API. Never leaves the server.
	APIKey string `yaml:"api_key"`

	// WorkflowID is the fixed workflow every session is created for.
	WorkflowID string `yaml:"workflow_id"`

	// BaseURL of the upstream API, without trailing slash.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single upstream call.
	Timeout time.Duration `yaml:"timeout"`
}

// TableauConfig holds the Connected App signing identity.
type TableauConfig struct {
	ClientID     string `yaml:"client_id"`
	KeyID        string `yaml:"client_key_id"`
	ClientSecret string `yaml:"client_secret"`

	// User is the subject of issued tokens. Optional.
	User string `yaml:"user"`
}

// BindEnv binds every configuration key to its environment variable and sets defaults.
func BindEnv(v *viper.Viper) {
	for _, b := range envBindings {
		_ = v.BindEnv(b[0], b[1])
	}
	v.SetDefault(PortKey, DefaultPort)
	v.SetDefault(ChatKitBaseURLKey, DefaultChatKitBaseURL)
	v.SetDefault(ChatKitTimeoutKey, DefaultChatKitTimeout)
}

// FromViper builds and validates a Config from the given viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:           strings.TrimSpace(v.GetString(PortKey)),
		AllowedOrigins: SplitList(v.GetString(AllowedOriginsKey)),
		ChatKit: ChatKitConfig{
			APIKey:     v.GetString(ChatKitAPIKeyKey),
			WorkflowID: v.GetString(ChatKitWorkflowIDKey),
			BaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString(ChatKitBaseURLKey)), "/"),
			Timeout:    v.GetDuration(ChatKitTimeoutKey),
		},
		Tableau: TableauConfig{
			ClientID:     v.GetString(TableauClientIDKey),
			KeyID:        v.GetString(TableauClientKeyIDKey),
			ClientSecret: v.GetString(TableauClientSecretKey),
			User:         v.GetString(TableauUserKey),
		},
	}
	// a YAML config file may carry the origins as a proper list
	if len(cfg.AllowedOrigins) == 0 {
		for _, o := range v.GetStringSlice(AllowedOriginsKey) {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, SplitList(o)...)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would prevent the server from starting.
// Missing credentials are not an error here: they are reported per request.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid %s %q: must be a number between 1 and 65535", EnvPort, c.Port)
	}
	if c.ChatKit.BaseURL == "" {
		return fmt.Errorf("%s must not be empty", EnvChatKitBaseURL)
	}
	if c.ChatKit.Timeout <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", EnvChatKitTimeout, c.ChatKit.Timeout)
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Missing returns the names of the required signing variables that are empty,
// in a fixed order. The subject user is optional and never reported.
func (t TableauConfig) Missing() []string {
	var missing []string
	if t.ClientID == "" {
		missing = append(missing, EnvTableauClientID)
	}
	if t.KeyID == "" {
		missing = append(missing, EnvTableauClientKeyID)
	}
	if t.ClientSecret == "" {
		missing = append(missing, EnvTableauClientSecret)
	}
	return missing
}

// Missing returns the names of the upstream session variables that are empty.
func (c ChatKitConfig) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, EnvOpenAIAPIKey)
	}
	if c.WorkflowID == "" {
		missing = append(missing, EnvChatKitWorkflowID)
	}
	return missing
}

// Redacted returns a copy with every secret replaced by a placeholder.
// Empty secrets stay empty so that missing values remain visible.
func (c Config) Redacted() Config {
	out := c
	out.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	if out.ChatKit.APIKey != "" {
		out.ChatKit.APIKey = redacted
	}
	if out.Tableau.ClientSecret != "" {
		out.Tableau.ClientSecret = redacted
	}
	return out
}

// RedactedYAML renders the redacted configuration as YAML.
func (c Config) RedactedYAML() ([]byte, error) {
	data, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// SplitList splits a comma-separated list, trimming blanks and dropping empty entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
