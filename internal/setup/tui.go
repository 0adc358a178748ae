package setup

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/swingdesk/signum/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard.
func RunTUI() error {
	var (
		platform        string
		pair            string
		mode            string
		gatePolicy      string
		pollIntervalStr string
		signalCooldown  string
		watchCooldown   string
		atrM15Str       string
		atrH1Str        string
		atrH4Str        string
		confirm         bool
	)

	// defaults
	pair = "XAU_USDT"
	pollIntervalStr = "15s"
	signalCooldown = "3m"
	watchCooldown = "10m"
	atrM15Str = "0"
	atrH1Str = "0"
	atrH4Str = "0"

	// step 1: welcome + platform
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("SIGNUM CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's get your signal engine set up.\n"))

	fmt.Println(stepStyle.Render("STEP 1: PLATFORM"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Data Feed Platform").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Hyperliquid", "hyperliquid"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	// pair
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SIGNUM CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: INSTRUMENT"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Instrument Pair").
				Description("Must contain underscore (e.g. XAU_USDT)").
				Value(&pair).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pair cannot be empty")
					}
					if !strings.Contains(s, "_") {
						return fmt.Errorf("invalid format: must be BASE_QUOTE (e.g. XAU_USDT)")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// mode and gate policy
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SIGNUM CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: BEHAVIOR"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Operating Mode").
				Description("SAFE caps plan confidence, AGGRESSIVE does not").
				Options(
					huh.NewOption("Safe", "SAFE"),
					huh.NewOption("Aggressive", "AGGRESSIVE"),
				).
				Value(&mode),
			huh.NewSelect[string]().
				Title("No-Trade Gate Policy").
				Description("strict requires full HTF alignment, momentum only vetoes hard conflicts").
				Options(
					huh.NewOption("Strict", "strict"),
					huh.NewOption("Momentum", "momentum"),
				).
				Value(&gatePolicy),
		),
	).Run()
	if err != nil {
		return err
	}

	// timing
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SIGNUM CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: TIMING"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Poll Interval").
				Description("Duration string (e.g. 15s, 30s, 1m)").
				Value(&pollIntervalStr).
				Validate(validateDuration),
			huh.NewInput().
				Title("Signal Cooldown").
				Description("Minimum pause between published signals (e.g. 3m)").
				Value(&signalCooldown).
				Validate(validateDuration),
			huh.NewInput().
				Title("Watch Cooldown").
				Description("Minimum pause between watch reports (e.g. 10m)").
				Value(&watchCooldown).
				Validate(validateDuration),
		),
	).Run()
	if err != nil {
		return err
	}

	// ATR floors
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SIGNUM CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 5: VOLATILITY FLOORS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Min ATR on M15").
				Description("0 disables the floor").
				Value(&atrM15Str).
				Validate(validateFloor),
			huh.NewInput().
				Title("Min ATR on H1").
				Description("0 disables the floor").
				Value(&atrH1Str).
				Validate(validateFloor),
			huh.NewInput().
				Title("Min ATR on H4").
				Description("0 disables the floor").
				Value(&atrH4Str).
				Validate(validateFloor),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SIGNUM CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Platform: %s\nPair: %s\nMode: %s\nGate: %s\nPoll: %s\nCooldowns: signal %s / watch %s\n",
		platform, pair, mode, gatePolicy, pollIntervalStr, signalCooldown, watchCooldown,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	pollInterval, _ := time.ParseDuration(pollIntervalStr)
	sigCd, _ := time.ParseDuration(signalCooldown)
	watchCd, _ := time.ParseDuration(watchCooldown)

	cfgTmp := config.ConfigTmp{
		Platform:       platform,
		Pair:           pair,
		Mode:           mode,
		GatePolicy:     gatePolicy,
		PollInterval:   pollInterval,
		SignalCooldown: sigCd,
		WatchCooldown:  watchCd,
		MinATR:         make(map[string]float64),
	}

	for tf, v := range map[string]string{"M15": atrM15Str, "H1": atrH1Str, "H4": atrH4Str} {
		floor, _ := strconv.ParseFloat(v, 64)
		if floor > 0 {
			cfgTmp.MinATR[tf] = floor
		}
	}
	if len(cfgTmp.MinATR) == 0 {
		cfgTmp.MinATR = nil
	}

	configs := []config.ConfigTmp{cfgTmp}

	data, err := yaml.Marshal(configs)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting engine...", filename)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

func validateDuration(s string) error {
	_, err := time.ParseDuration(s)
	return err
}

func validateFloor(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
