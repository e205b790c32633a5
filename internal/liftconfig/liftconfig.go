package liftconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/Milford1337/Lift-Simulation/internal/liftsim"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var Log = logger.GetLogger()

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)

type Config struct {
	StartFloor  int    `yaml:"start_floor" toml:"start_floor" json:"start_floor"`
	FloorTime   int    `yaml:"floor_time" toml:"floor_time" json:"floor_time"`
	CollectTime int    `yaml:"collect_time" toml:"collect_time" json:"collect_time"`
	DropTime    int    `yaml:"drop_time" toml:"drop_time" json:"drop_time"`
	Capacity    int    `yaml:"capacity" toml:"capacity" json:"capacity"`
	TickLimit   int    `yaml:"tick_limit" toml:"tick_limit" json:"tick_limit"`
	Policy      string `yaml:"policy" toml:"policy" json:"policy"`
}

func Default() Config {
	timing := liftsim.DefaultTiming()
	return Config{
		StartFloor:  liftconsts.DEFAULT_START_FLOOR,
		FloorTime:   timing.FloorTime,
		CollectTime: timing.CollectTime,
		DropTime:    timing.DropTime,
		Capacity:    liftconsts.DEFAULT_CAPACITY,
		TickLimit:   liftconsts.DEFAULT_TICK_LIMIT,
		Policy:      liftconsts.POLICY_OPPORTUNISTIC,
	}
}

func (c Config) Timing() liftsim.Timing {
	return liftsim.Timing{
		FloorTime:   c.FloorTime,
		CollectTime: c.CollectTime,
		DropTime:    c.DropTime,
	}
}

func (c Config) Validate() error {
	if c.FloorTime < 1 || c.CollectTime < 1 || c.DropTime < 1 {
		return fmt.Errorf("durations must be at least 1 second (floor=%d collect=%d drop=%d): %w",
			c.FloorTime, c.CollectTime, c.DropTime, ErrInvalidConfig)
	}
	if c.Capacity < 1 && c.Policy != liftconsts.POLICY_BASIC {
		return fmt.Errorf("capacity %d must be at least 1 for the %s policy: %w", c.Capacity, c.Policy, ErrInvalidConfig)
	}
	if c.TickLimit < 1 {
		return fmt.Errorf("tick limit %d must be at least 1: %w", c.TickLimit, ErrInvalidConfig)
	}
	if c.Policy != liftconsts.POLICY_ALL && !slices.Contains(liftconsts.Policies, c.Policy) {
		return fmt.Errorf("unknown policy %q: %w", c.Policy, ErrInvalidConfig)
	}
	return nil
}

// LoadFile reads a configuration file on top of the defaults. The decoder is
// picked from the extension: .yaml/.yml, .toml or .env.
func LoadFile(path string) (Config, error) {
	c := Default()
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = loadYAML(path, &c)
	case ".toml":
		_, err = toml.DecodeFile(path, &c)
	case ".env":
		err = loadEnv(path, &c)
	default:
		return c, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return c, fmt.Errorf("loading config %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	Log.Debug().Msgf("Loaded config from %s: %+v", path, c)
	return c, nil
}

func loadYAML(path string, c *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func loadEnv(path string, c *Config) error {
	envFile, err := godotenv.Read(path)
	if err != nil {
		return err
	}

	fields := map[string]*int{
		"LIFT_START_FLOOR":  &c.StartFloor,
		"LIFT_FLOOR_TIME":   &c.FloorTime,
		"LIFT_COLLECT_TIME": &c.CollectTime,
		"LIFT_DROP_TIME":    &c.DropTime,
		"LIFT_CAPACITY":     &c.Capacity,
		"LIFT_TICK_LIMIT":   &c.TickLimit,
	}
	for key, field := range fields {
		value, ok := envFile[key]
		if !ok {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s=%q is not an integer: %w", key, value, ErrInvalidConfig)
		}
		*field = number
	}
	if policy, ok := envFile["LIFT_POLICY"]; ok {
		c.Policy = strings.TrimSpace(policy)
	}
	return nil
}
