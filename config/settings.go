package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server    ServerSettings   `json:"server"`
	Emby      EmbySettings     `json:"emby"`
	Gateway   GatewaySettings  `json:"gateway"`
	Alist     AlistSettings    `json:"alist"`
	Access    AccessSettings   `json:"access"`
	Overrides OverrideSettings `json:"overrides"`
	Log       LogConfig        `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// EmbySettings points at the upstream media server that owns item metadata.
type EmbySettings struct {
	URL    string `json:"url"`
	APIKey string `json:"apiKey"`
}

// GatewaySettings configures the token-signed streaming gateway backend.
type GatewaySettings struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// AlistSettings configures the file-hosting backend. When both URL and APIKey
// are set the proxy resolves stream URLs through alist instead of the gateway.
type AlistSettings struct {
	URL    string `json:"url"`
	APIKey string `json:"apiKey"`
}

// AccessSettings controls which clients may see the real stream. An empty pair
// of allow lists means no restriction.
type AccessSettings struct {
	UserAgentAllowList    []string `json:"userAgentAllowList"`
	WebUserAgentAllowList []string `json:"webUserAgentAllowList"`
	ForbiddenStreamPath   string   `json:"forbiddenStreamPath"`
}

// OverrideSettings maps commemoration windows to substitute stream paths.
// An empty path disables the corresponding override.
type OverrideSettings struct {
	MemorialDayStreamPath string `json:"memorialDayStreamPath"`
	IncidentDayStreamPath string `json:"incidentDayStreamPath"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	File       string `json:"file"`
	Level      string `json:"level"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns sane defaults for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Server:  ServerSettings{Host: "0.0.0.0", Port: 60001},
		Emby:    EmbySettings{URL: "", APIKey: ""},
		Gateway: GatewaySettings{URL: "", Token: ""},
		Alist:   AlistSettings{URL: "", APIKey: ""},
		Access: AccessSettings{
			UserAgentAllowList:    []string{},
			WebUserAgentAllowList: []string{},
			ForbiddenStreamPath:   "",
		},
		Overrides: OverrideSettings{},
		Log: LogConfig{
			File:       "cache/logs/streamproxy.log",
			Level:      "info",
			MaxSize:    50, // 50 MB per file
			MaxBackups: 3,  // keep 3 old files
			MaxAge:     7,  // 7 days
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings from disk, creating the file with defaults when missing.
// Fields absent from an older config are backfilled with defaults.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s := DefaultSettings()
			if saveErr := m.Save(s); saveErr != nil {
				return Settings{}, saveErr
			}
			return s, nil
		}
		return Settings{}, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}

	// Backfill defaults when the config predates a setting
	if strings.TrimSpace(s.Server.Host) == "" {
		s.Server.Host = "0.0.0.0"
	}
	if s.Server.Port == 0 {
		s.Server.Port = 60001
	}
	if s.Access.UserAgentAllowList == nil {
		s.Access.UserAgentAllowList = []string{}
	}
	if s.Access.WebUserAgentAllowList == nil {
		s.Access.WebUserAgentAllowList = []string{}
	}
	if strings.TrimSpace(s.Log.File) == "" {
		s.Log.File = "cache/logs/streamproxy.log"
	}
	if s.Log.MaxSize == 0 {
		s.Log.MaxSize = 50
	}
	if s.Log.MaxBackups == 0 {
		s.Log.MaxBackups = 3
	}
	if s.Log.MaxAge == 0 {
		s.Log.MaxAge = 7
	}

	return s, nil
}

// Save writes the provided settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}
