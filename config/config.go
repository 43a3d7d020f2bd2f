// Package config handles hostbridge.toml daemon configuration.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "hostbridge.toml"

//go:embed schema.cue
var schema []byte

// Config represents a hostbridge.toml file.
type Config struct {
	Registry Registry `toml:"registry" json:"registry"`
	Domain   Domain   `toml:"domain" json:"domain"`
	Remote   Remote   `toml:"remote" json:"remote"`
	Log      Log      `toml:"log" json:"log"`

	// Dir is the directory containing hostbridge.toml (set at load time).
	Dir string `toml:"-" json:"-"`
}

// Registry configures the identity registry.
type Registry struct {
	TargetName      string `toml:"target-name" json:"target-name"`
	CapacityAlarm   int    `toml:"capacity-alarm" json:"capacity-alarm"`
	DeadlockTimeout string `toml:"deadlock-timeout" json:"deadlock-timeout"`
}

// Domain configures the isolation domain.
type Domain struct {
	QueueSize int `toml:"queue-size" json:"queue-size"`
}

// Remote configures the network transports. An empty address disables
// that transport.
type Remote struct {
	Listen        string `toml:"listen" json:"listen"`
	ConnectListen string `toml:"connect-listen" json:"connect-listen"`
	ConnectPath   string `toml:"connect-path" json:"connect-path"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity" json:"verbosity"`
	Path      string `toml:"path" json:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Registry: Registry{
			TargetName:      "Invoke",
			DeadlockTimeout: "30s",
		},
		Domain: Domain{QueueSize: 64},
		Remote: Remote{
			Listen:        "127.0.0.1:7420",
			ConnectListen: "127.0.0.1:7421",
		},
		Log: Log{Verbosity: 4},
	}
}

// Load parses hostbridge.toml from the given directory. Keys the file
// leaves out keep their Default values.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	if c.Log.Path != "" && !filepath.IsAbs(c.Log.Path) {
		c.Log.Path = filepath.Join(c.Dir, c.Log.Path)
	}
	return c, nil
}

// Parse decodes TOML data over the defaults and validates the result.
// Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a hostbridge.toml file, then
// loads it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks c against the embedded schema, then checks the fields
// the schema cannot express.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema, cue.Filename("schema.cue"))
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath("#Config"))
	if root.Err() != nil {
		return fmt.Errorf("internal error: schema definition #Config not found: %w", root.Err())
	}

	value := ctx.Encode(c)
	if value.Err() != nil {
		return value.Err()
	}
	if err := root.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := c.DeadlockTimeout(); err != nil {
		return err
	}
	return nil
}

// DeadlockTimeout returns the parsed registry.deadlock-timeout. Zero
// disables lock timeout detection.
func (c *Config) DeadlockTimeout() (time.Duration, error) {
	if c.Registry.DeadlockTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Registry.DeadlockTimeout)
	if err != nil {
		return 0, fmt.Errorf("registry.deadlock-timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("registry.deadlock-timeout: negative duration %s", d)
	}
	return d, nil
}

// LogPath returns the log file path, or nil for stderr.
func (c *Config) LogPath() *string {
	if c.Log.Path == "" {
		return nil
	}
	p := c.Log.Path
	return &p
}
