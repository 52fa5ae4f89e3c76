package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestTableauConfig_Missing(t *testing.T) {
	full := TableauConfig{ClientID: "id", KeyID: "kid", ClientSecret: "secret"}

	tests := []struct {
		name string
		cfg  TableauConfig
		want []string
	}{
		{name: "complete", cfg: full, want: nil},
		{name: "complete without user", cfg: TableauConfig{ClientID: "id", KeyID: "kid", ClientSecret: "s"}, want: nil},
		{name: "no client id", cfg: TableauConfig{KeyID: "kid", ClientSecret: "s"}, want: []string{EnvTableauClientID}},
		{name: "no key id", cfg: TableauConfig{ClientID: "id", ClientSecret: "s"}, want: []string{EnvTableauClientKeyID}},
		{name: "no secret", cfg: TableauConfig{ClientID: "id", KeyID: "kid"}, want: []string{EnvTableauClientSecret}},
		{name: "id and secret", cfg: TableauConfig{KeyID: "kid"}, want: []string{EnvTableauClientID, EnvTableauClientSecret}},
		{name: "key id and secret", cfg: TableauConfig{ClientID: "id"}, want: []string{EnvTableauClientKeyID, EnvTableauClientSecret}},
		{name: "id and key id", cfg: TableauConfig{ClientSecret: "s"}, want: []string{EnvTableauClientID, EnvTableauClientKeyID}},
		{name: "all", cfg: TableauConfig{User: "someone"}, want: []string{EnvTableauClientID, EnvTableauClientKeyID, EnvTableauClientSecret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Missing(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Missing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromViper(t *testing.T) {
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvAllowedOrigins, " https://a.example , ,https://b.example")
	t.Setenv(EnvOpenAIAPIKey, "sk-test")
	t.Setenv(EnvChatKitWorkflowID, "wf_123")
	t.Setenv(EnvChatKitBaseURL, "http://localhost:9999/")
	t.Setenv(EnvTableauClientID, "client")
	t.Setenv(EnvTableauClientKeyID, "kid")
	t.Setenv(EnvTableauClientSecret, "secret")
	t.Setenv(EnvTableauUser, "user@example.com")

	v := viper.New()
	BindEnv(v)

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}

	if cfg.Port != "8081" || cfg.Addr() != ":8081" {
		t.Errorf("Port = %q, Addr() = %q", cfg.Port, cfg.Addr())
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, wantOrigins) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, wantOrigins)
	}
	if cfg.ChatKit.BaseURL != "http://localhost:9999" {
		t.Errorf("ChatKit.BaseURL = %q", cfg.ChatKit.BaseURL)
	}
	if cfg.ChatKit.Timeout != DefaultChatKitTimeout {
		t.Errorf("ChatKit.Timeout = %s, want %s", cfg.ChatKit.Timeout, DefaultChatKitTimeout)
	}
	want := TableauConfig{ClientID: "client", KeyID: "kid", ClientSecret: "secret", User: "user@example.com"}
	if cfg.Tableau != want {
		t.Errorf("Tableau = %+v, want %+v", cfg.Tableau, want)
	}
	if len(cfg.ChatKit.Missing()) != 0 {
		t.Errorf("ChatKit.Missing() = %v, want none", cfg.ChatKit.Missing())
	}
}

func TestFromViper_Defaults(t *testing.T) {
	// empty values count as unset
	for _, name := range []string{EnvPort, EnvAllowedOrigins, EnvChatKitBaseURL, EnvChatKitTimeout} {
		t.Setenv(name, "")
	}

	v := viper.New()
	BindEnv(v)

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.ChatKit.BaseURL != DefaultChatKitBaseURL {
		t.Errorf("ChatKit.BaseURL = %q", cfg.ChatKit.BaseURL)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("AllowedOrigins = %v, want empty", cfg.AllowedOrigins)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Port:    "3000",
		ChatKit: ChatKitConfig{BaseURL: DefaultChatKitBaseURL, Timeout: time.Second},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port not a number", mutate: func(c *Config) { c.Port = "http" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, wantErr: true},
		{name: "empty base url", mutate: func(c *Config) { c.ChatKit.BaseURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.ChatKit.Timeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_RedactedYAML(t *testing.T) {
	cfg := Config{
		Port:    "3000",
		ChatKit: ChatKitConfig{APIKey: "sk-very-secret", WorkflowID: "wf"},
		Tableau: TableauConfig{ClientID: "id", KeyID: "kid", ClientSecret: "tableau-very-secret"},
	}

	data, err := cfg.RedactedYAML()
	if err != nil {
		t.Fatalf("RedactedYAML() error = %v", err)
	}
	out := string(data)
	for _, secret := range []string{"sk-very-secret", "tableau-very-secret"} {
		if strings.Contains(out, secret) {
			t.Errorf("output contains secret %q:\n%s", secret, out)
		}
	}
	if !strings.Contains(out, redacted) {
		t.Errorf("output does not contain placeholder:\n%s", out)
	}
	if cfg.ChatKit.APIKey != "sk-very-secret" {
		t.Errorf("Redacted() modified the receiver")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: nil},
		{raw: " , ", want: nil},
		{raw: "a", want: []string{"a"}},
		{raw: "a, b ,c", want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if got := SplitList(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
