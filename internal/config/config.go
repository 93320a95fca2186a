package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/firefly-engineering/sphinx-me/internal/system"
)

const (
	// FileName is the optional per-project configuration file.
	FileName  = ".sphinx-me.toml"
	fileType  = "toml"
	EnvPrefix = "SPHINX_ME"

	DocsDirName = "docs"
	IndexFile   = "index.rst"
	ConfFile    = "conf.py"
	AuthorsFile = "AUTHORS"
	MasterDoc   = "index"
	StubCommand = "sphinx-me"

	DefaultPython       = "python"
	DefaultSetupScript  = "setup.py"
	DefaultModuleSuffix = ".py"
	DefaultBuildCommand = "sphinx-build"
	DefaultBuildOutput  = "build"
)

// Config holds the tool settings for one project.
type Config struct {
	// Python is the interpreter used for setup.py queries and module imports.
	Python string `mapstructure:"python"`

	// SetupScript is the build-metadata script in the project root.
	SetupScript string `mapstructure:"setup_script"`

	// ModuleSuffix marks files in the project root that are probed as modules.
	ModuleSuffix string `mapstructure:"module_suffix"`

	// ImportModules probes modules by importing them with Python instead of
	// reading their source.
	ImportModules bool `mapstructure:"import_modules"`

	Build  BuildConfig  `mapstructure:"build"`
	Prompt PromptConfig `mapstructure:"prompt"`

	// Path is the config file that was loaded, empty when only defaults apply.
	Path string `mapstructure:"-"`
}

// BuildConfig configures the documentation build run after scaffolding.
type BuildConfig struct {
	Command string `mapstructure:"command"`
	Output  string `mapstructure:"output"`
}

// PromptConfig configures how missing values are asked for.
type PromptConfig struct {
	NonInteractive bool   `mapstructure:"non_interactive"`
	DefaultVersion string `mapstructure:"default_version"`
	DefaultAuthor  string `mapstructure:"default_author"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Python:       DefaultPython,
		SetupScript:  DefaultSetupScript,
		ModuleSuffix: DefaultModuleSuffix,
		Build: BuildConfig{
			Command: DefaultBuildCommand,
			Output:  DefaultBuildOutput,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("python", d.Python)
	v.SetDefault("setup_script", d.SetupScript)
	v.SetDefault("module_suffix", d.ModuleSuffix)
	v.SetDefault("import_modules", d.ImportModules)
	v.SetDefault("build.command", d.Build.Command)
	v.SetDefault("build.output", d.Build.Output)
	v.SetDefault("prompt.non_interactive", false)
	v.SetDefault("prompt.default_version", "")
	v.SetDefault("prompt.default_author", "")
}

// Load reads dir/.sphinx-me.toml from fsys if present and applies
// SPHINX_ME_* environment overrides (SPHINX_ME_BUILD_COMMAND for
// build.command). A nil fsys reads the OS filesystem.
func Load(fsys system.FileSystem, dir string) (*Config, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := filepath.Join(dir, FileName)
	loaded := ""
	if info, err := fsys.Stat(configPath); err == nil && !info.IsDir() {
		data, err := fsys.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}
		v.SetConfigType(fileType)
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
		loaded = configPath
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", configPath, err)
	}
	cfg.Path = loaded

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if c.Python == "" {
		return fmt.Errorf("python is required")
	}

	if c.SetupScript == "" {
		return fmt.Errorf("setup_script is required")
	}
	if filepath.Base(c.SetupScript) != c.SetupScript {
		return fmt.Errorf("setup_script must be a file name in the project root (got %q)", c.SetupScript)
	}

	if !strings.HasPrefix(c.ModuleSuffix, ".") || len(c.ModuleSuffix) < 2 {
		return fmt.Errorf("module_suffix must look like \".py\" (got %q)", c.ModuleSuffix)
	}

	if strings.TrimSpace(c.Build.Command) == "" {
		return fmt.Errorf("build.command is required")
	}
	if c.Build.Output == "" || filepath.IsAbs(c.Build.Output) {
		return fmt.Errorf("build.output must be a path relative to the docs directory (got %q)", c.Build.Output)
	}

	return nil
}
