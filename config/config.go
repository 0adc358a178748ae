// Package config loads and validates engine configuration from a YAML file
// or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/swingdesk/signum/internal/domain"
)

// Defaults applied to fields omitted from the YAML file.
const (
	DefaultPollInterval   = 15 * time.Second
	DefaultBars           = 900
	DefaultSignalCooldown = 180 * time.Second
	DefaultWatchCooldown  = 600 * time.Second

	DefaultSwingLookback     = 3
	DefaultZoneBaseCandles   = 3
	DefaultZoneImpulsePct    = 0.6
	DefaultLiquidityLookback = 60
	DefaultWickRatio         = 0.55

	minPollInterval = 3 * time.Second
	minCooldown     = 30 * time.Second
	minBars         = 300
)

// Config one instrument's engine configuration.
type Config struct {
	Platform string
	Pair     domain.Pair

	Mode       domain.Mode
	GatePolicy string

	PollInterval time.Duration
	Bars         int

	Timeframes     []domain.Timeframe
	EntryTimeframe domain.Timeframe
	ZoneTimeframes []domain.Timeframe

	SignalCooldown time.Duration
	WatchCooldown  time.Duration

	MinATR map[domain.Timeframe]float64

	SwingLookback     int
	ZoneBaseCandles   int
	ZoneImpulsePct    float64
	LiquidityLookback int
	WickRatio         float64

	JournalDir string
	WebAddr    string
}

// ConfigTmp is the YAML shape of one instrument entry. The setup wizard
// marshals it back when generating a config file.
type ConfigTmp struct {
	Platform string `yaml:"platform"`
	Pair     string `yaml:"pair"`

	Mode       string `yaml:"mode,omitempty"`
	GatePolicy string `yaml:"gate_policy,omitempty"`

	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
	Bars         int           `yaml:"bars,omitempty"`

	Timeframes     []string `yaml:"timeframes,omitempty"`
	EntryTimeframe string   `yaml:"entry_timeframe,omitempty"`
	ZoneTimeframes []string `yaml:"zone_timeframes,omitempty"`

	SignalCooldown time.Duration `yaml:"signal_cooldown,omitempty"`
	WatchCooldown  time.Duration `yaml:"watch_cooldown,omitempty"`

	MinATR map[string]float64 `yaml:"min_atr,omitempty"`

	SwingLookback     int     `yaml:"swing_lookback,omitempty"`
	ZoneBaseCandles   int     `yaml:"zone_base_candles,omitempty"`
	ZoneImpulsePct    float64 `yaml:"zone_impulse_pct,omitempty"`
	LiquidityLookback int     `yaml:"liquidity_lookback,omitempty"`
	WickRatio         float64 `yaml:"wick_ratio,omitempty"`

	JournalDir string `yaml:"journal_dir,omitempty"`
	WebAddr    string `yaml:"web_addr,omitempty"`
}

// Get reads configuration from the --config YAML file, falling back to CLI
// flags for a single instrument.
func Get() ([]Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	pairFlag := flag.String("pair", "XAU_USDT", "instrument pair, example: XAU_USDT")
	platformFlag := flag.String("platform", "binance", "data feed platform: binance, bybit or hyperliquid")
	modeFlag := flag.String("mode", string(domain.ModeSafe), "operating mode: SAFE or AGGRESSIVE")
	policyFlag := flag.String("gatepolicy", "strict", "no-trade gate policy: strict or momentum")
	pollFlag := flag.Duration("pollinterval", DefaultPollInterval, "tick interval")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	pair, err := pairFromString(*pairFlag)
	if err != nil {
		return nil, err
	}

	conf := Config{
		Platform:     *platformFlag,
		Pair:         pair,
		Mode:         domain.Mode(strings.ToUpper(*modeFlag)),
		GatePolicy:   *policyFlag,
		PollInterval: *pollFlag,
	}
	conf.applyDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return []Config{conf}, nil
}

func getYaml(path string) ([]Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tmps []ConfigTmp
	if err := yaml.Unmarshal(f, &tmps); err != nil {
		return nil, err
	}
	if len(tmps) == 0 {
		return nil, fmt.Errorf("config file %s contains no instruments", path)
	}

	configs := make([]Config, 0, len(tmps))
	for i, tmp := range tmps {
		conf, err := fromTmp(tmp)
		if err != nil {
			return nil, fmt.Errorf("config entry %d: %w", i, err)
		}
		configs = append(configs, conf)
	}
	return configs, nil
}

func fromTmp(tmp ConfigTmp) (Config, error) {
	pair, err := pairFromString(tmp.Pair)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'pair' param: %w", err)
	}

	conf := Config{
		Platform:       tmp.Platform,
		Pair:           pair,
		Mode:           domain.Mode(strings.ToUpper(tmp.Mode)),
		GatePolicy:     tmp.GatePolicy,
		PollInterval:   tmp.PollInterval,
		Bars:           tmp.Bars,
		EntryTimeframe: domain.Timeframe(tmp.EntryTimeframe),
		SignalCooldown: tmp.SignalCooldown,
		WatchCooldown:  tmp.WatchCooldown,

		SwingLookback:     tmp.SwingLookback,
		ZoneBaseCandles:   tmp.ZoneBaseCandles,
		ZoneImpulsePct:    tmp.ZoneImpulsePct,
		LiquidityLookback: tmp.LiquidityLookback,
		WickRatio:         tmp.WickRatio,

		JournalDir: tmp.JournalDir,
		WebAddr:    tmp.WebAddr,
	}

	if conf.Timeframes, err = timeframesFromStrings(tmp.Timeframes); err != nil {
		return Config{}, fmt.Errorf("incorrect 'timeframes' param: %w", err)
	}
	if conf.ZoneTimeframes, err = timeframesFromStrings(tmp.ZoneTimeframes); err != nil {
		return Config{}, fmt.Errorf("incorrect 'zone_timeframes' param: %w", err)
	}

	if len(tmp.MinATR) > 0 {
		conf.MinATR = make(map[domain.Timeframe]float64, len(tmp.MinATR))
		for tfStr, floor := range tmp.MinATR {
			tf := domain.Timeframe(tfStr)
			if !tf.Valid() {
				return Config{}, fmt.Errorf("incorrect 'min_atr' timeframe: %s", tfStr)
			}
			if floor < 0 {
				return Config{}, fmt.Errorf("negative 'min_atr' floor for %s", tfStr)
			}
			conf.MinATR[tf] = floor
		}
	}

	conf.applyDefaults()
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = domain.ModeSafe
	}
	if c.GatePolicy == "" {
		c.GatePolicy = "strict"
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Bars == 0 {
		c.Bars = DefaultBars
	}
	if len(c.Timeframes) == 0 {
		c.Timeframes = append([]domain.Timeframe(nil), domain.AllTimeframes...)
	}
	if c.EntryTimeframe == "" {
		c.EntryTimeframe = domain.TimeframeM15
	}
	if len(c.ZoneTimeframes) == 0 {
		c.ZoneTimeframes = []domain.Timeframe{domain.TimeframeM15, domain.TimeframeH1, domain.TimeframeH4}
	}
	if c.SignalCooldown == 0 {
		c.SignalCooldown = DefaultSignalCooldown
	}
	if c.WatchCooldown == 0 {
		c.WatchCooldown = DefaultWatchCooldown
	}
	if c.SwingLookback == 0 {
		c.SwingLookback = DefaultSwingLookback
	}
	if c.ZoneBaseCandles == 0 {
		c.ZoneBaseCandles = DefaultZoneBaseCandles
	}
	if c.ZoneImpulsePct == 0 {
		c.ZoneImpulsePct = DefaultZoneImpulsePct
	}
	if c.LiquidityLookback == 0 {
		c.LiquidityLookback = DefaultLiquidityLookback
	}
	if c.WickRatio == 0 {
		c.WickRatio = DefaultWickRatio
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []string

	switch c.Platform {
	case "binance", "bybit", "hyperliquid":
	default:
		errs = append(errs, fmt.Sprintf("unsupported platform: %q", c.Platform))
	}

	if c.Mode != domain.ModeSafe && c.Mode != domain.ModeAggressive {
		errs = append(errs, fmt.Sprintf("unsupported mode: %q", c.Mode))
	}
	if c.GatePolicy != "strict" && c.GatePolicy != "momentum" {
		errs = append(errs, fmt.Sprintf("unsupported gate policy: %q", c.GatePolicy))
	}

	if c.PollInterval < minPollInterval {
		errs = append(errs, fmt.Sprintf("poll_interval too small (min %s)", minPollInterval))
	}
	if c.SignalCooldown < minCooldown {
		errs = append(errs, fmt.Sprintf("signal_cooldown too small (min %s)", minCooldown))
	}
	if c.WatchCooldown < minCooldown {
		errs = append(errs, fmt.Sprintf("watch_cooldown too small (min %s)", minCooldown))
	}
	if c.Bars < minBars {
		errs = append(errs, fmt.Sprintf("bars too small (min %d)", minBars))
	}

	for _, tf := range c.Timeframes {
		if !tf.Valid() {
			errs = append(errs, fmt.Sprintf("unsupported timeframe: %q", tf))
		}
	}
	if !c.EntryTimeframe.Valid() {
		errs = append(errs, fmt.Sprintf("unsupported entry timeframe: %q", c.EntryTimeframe))
	}

	if c.ZoneImpulsePct <= 0 || c.ZoneImpulsePct > 1 {
		errs = append(errs, "zone_impulse_pct must be in (0, 1]")
	}
	if c.WickRatio <= 0 || c.WickRatio > 1 {
		errs = append(errs, "wick_ratio must be in (0, 1]")
	}
	if c.SwingLookback < 1 {
		errs = append(errs, "swing_lookback must be at least 1")
	}
	if c.ZoneBaseCandles < 1 {
		errs = append(errs, "zone_base_candles must be at least 1")
	}
	if c.LiquidityLookback < 1 {
		errs = append(errs, "liquidity_lookback must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config error:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func pairFromString(pairStr string) (domain.Pair, error) {
	parts := strings.Split(pairStr, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.Pair{}, fmt.Errorf("invalid pair param: %q", pairStr)
	}
	return domain.Pair{From: parts[0], To: parts[1]}, nil
}

func timeframesFromStrings(values []string) ([]domain.Timeframe, error) {
	if len(values) == 0 {
		return nil, nil
	}
	tfs := make([]domain.Timeframe, 0, len(values))
	for _, v := range values {
		tf := domain.Timeframe(v)
		if !tf.Valid() {
			return nil, fmt.Errorf("unsupported timeframe: %q", v)
		}
		tfs = append(tfs, tf)
	}
	return tfs, nil
}
