package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LEMMYTERM_INSTANCE.
const EnvPrefix = "LEMMYTERM"

// Config holds application-level configuration.
type Config struct {
	InstanceURL    string        // Instance for blank accounts; empty shows the instance picker
	DataDir        string        // Where the session store lives
	LogFile        string        // Empty disables logging
	LogLevel       string        // debug, info, warn or error
	Timeout        time.Duration // Bound on every API request
	PageSize       int
	CommentDepth   int
	InfiniteScroll bool // Default for a fresh session store
	Markdown       bool // Render bodies with glamour
	ConfigFile     string
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("instance", "", "instance URL used for new accounts (https only)")
	fs.String("config", "", "config file (default ~/.config/lemmyterm/config.yaml)")
	fs.String("log-file", "", "log file path, \"off\" to disable")
	fs.String("log-level", "", "log level: debug, info, warn, error")
}

// Load merges defaults, the config file, LEMMYTERM_* environment variables and
// flags, in increasing order of precedence. fs may be nil.
//
//	instance         LEMMYTERM_INSTANCE
//	data_dir         LEMMYTERM_DATA_DIR        (default ~/.local/share/lemmyterm)
//	log_file         LEMMYTERM_LOG_FILE        (default ~/.local/state/lemmyterm/lemmyterm.log)
//	log_level        LEMMYTERM_LOG_LEVEL       (default info)
//	timeout          LEMMYTERM_TIMEOUT         (default 15s)
//	page_size        LEMMYTERM_PAGE_SIZE       (default 20)
//	comment_depth    LEMMYTERM_COMMENT_DEPTH   (default 8)
//	infinite_scroll  LEMMYTERM_INFINITE_SCROLL (default false)
//	markdown         LEMMYTERM_MARKDOWN        (default true)
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("instance", "")
	v.SetDefault("data_dir", "~/.local/share/lemmyterm")
	v.SetDefault("log_file", "~/.local/state/lemmyterm/lemmyterm.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", "15s")
	v.SetDefault("page_size", 20)
	v.SetDefault("comment_depth", 8)
	v.SetDefault("infinite_scroll", false)
	v.SetDefault("markdown", true)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if fs != nil {
		for key, flag := range map[string]string{
			"instance":  "instance",
			"log_file":  "log-file",
			"log_level": "log-level",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding --%s: %w", flag, err)
				}
			}
		}
	}

	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		expanded, err := homedir.Expand(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("expanding config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName("config") // .yaml, .toml or .json
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "lemmyterm"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	instance, err := normalizeInstance(v.GetString("instance"))
	if err != nil {
		return Config{}, err
	}

	dataDir, err := homedir.Expand(v.GetString("data_dir"))
	if err != nil {
		return Config{}, fmt.Errorf("expanding data_dir: %w", err)
	}

	logFile := strings.TrimSpace(v.GetString("log_file"))
	if strings.EqualFold(logFile, "off") {
		logFile = ""
	}
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return Config{}, fmt.Errorf("expanding log_file: %w", err)
		}
	}

	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		return Config{}, fmt.Errorf("invalid timeout %q: must be a positive duration", v.GetString("timeout"))
	}
	pageSize := v.GetInt("page_size")
	if pageSize < 1 || pageSize > 50 {
		return Config{}, fmt.Errorf("invalid page_size %d: must be between 1 and 50", pageSize)
	}
	depth := v.GetInt("comment_depth")
	if depth < 1 {
		return Config{}, fmt.Errorf("invalid comment_depth %d: must be positive", depth)
	}

	return Config{
		InstanceURL:    instance,
		DataDir:        dataDir,
		LogFile:        logFile,
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		Timeout:        timeout,
		PageSize:       pageSize,
		CommentDepth:   depth,
		InfiniteScroll: v.GetBool("infinite_scroll"),
		Markdown:       v.GetBool("markdown"),
		ConfigFile:     v.ConfigFileUsed(),
	}, nil
}

// normalizeInstance accepts a bare domain or an https URL. Empty stays empty.
func normalizeInstance(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid instance %q: must be an absolute URL", raw)
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid instance %q: only https is allowed", raw)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}
