package internal

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notion2hugo/internal/models"
	"github.com/starford/notion2hugo/internal/repair"
	"github.com/starford/notion2hugo/internal/tagindex"
	"github.com/starford/notion2hugo/internal/watcher"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Site     SiteConfig        `yaml:"site"`
	Modules  ModulesConfig     `yaml:"modules"`
	Source   SourceConfig      `yaml:"source"`
	Manifest ManifestConfig    `yaml:"manifest"`
	Watch    WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Modules.Validate(); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}
	return c.Watch.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// SiteConfig names the folders and files of the Hugo site that get written.
type SiteConfig struct {
	ContentDir string `yaml:"content_dir"`
	StaticDir  string `yaml:"static_dir"`
	IndexFile  string `yaml:"index_file"`
	ConfigFile string `yaml:"config_file"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ContentDir, validation.Required, validation.By(relativePath)),
		validation.Field(&c.StaticDir, validation.Required, validation.By(relativePath),
			validation.NotIn(c.ContentDir).Error("must differ from content_dir")),
		validation.Field(&c.IndexFile, validation.Required, validation.By(plainName),
			validation.By(markdownName)),
		validation.Field(&c.ConfigFile, validation.Required, validation.By(plainName)),
	)
}

// ModulesConfig controls module detection and their tag index.
type ModulesConfig struct {
	Prefix      string `yaml:"prefix"`
	TagsHeading string `yaml:"tags_heading"`
}

// Validate validates the modules configuration.
func (c *ModulesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TagsHeading, validation.Required),
	)
}

// SourceConfig filters the export before conversion.
type SourceConfig struct {
	Ignore []string `yaml:"ignore"`
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Ignore, validation.Each(validation.Required, validation.By(globPattern))),
	)
}

// ManifestConfig holds the SQLite page manifest location. Empty disables it.
type ManifestConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(10*time.Millisecond)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatText,
		},
		Site: SiteConfig{
			ContentDir: "content",
			StaticDir:  "static",
			IndexFile:  models.IndexFile,
			ConfigFile: "hugo.toml",
		},
		Modules: ModulesConfig{
			Prefix:      "dm-",
			TagsHeading: tagindex.DefaultHeading,
		},
		Source: SourceConfig{
			Ignore: []string{"__MACOSX/**", "**/.DS_Store", "**/Thumbs.db"},
		},
		Watch: WatchConfig{
			Debounce: watcher.DefaultDebounce,
		},
	}
}

func relativePath(value any) error {
	s, _ := value.(string)
	if filepath.IsAbs(s) {
		return errors.New("must be relative to the hugo directory")
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(s)), "/") {
		if part == ".." {
			return errors.New("must stay inside the hugo directory")
		}
	}
	if filepath.Clean(s) == "." {
		return errors.New("must name a sub-directory")
	}
	return nil
}

func plainName(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return errors.New("must be a file name, not a path")
	}
	return nil
}

func markdownName(value any) error {
	s, _ := value.(string)
	if !strings.HasSuffix(s, repair.DocumentExt) {
		return errors.New("must end in .md")
	}
	return nil
}

func globPattern(value any) error {
	s, _ := value.(string)
	if !doublestar.ValidatePattern(s) {
		return errors.New("invalid glob pattern")
	}
	return nil
}
