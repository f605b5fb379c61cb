// Command ls-sunmoon is a terminal almanac for Sun and Moon rise, set,
// transit, twilight and phase.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-sunmoon/internal/config"
	"github.com/litescript/ls-sunmoon/internal/ephem"
	"github.com/litescript/ls-sunmoon/internal/logging"
	"github.com/litescript/ls-sunmoon/internal/report"
	"github.com/litescript/ls-sunmoon/internal/state"
	"github.com/litescript/ls-sunmoon/internal/ui"
	"github.com/litescript/ls-sunmoon/internal/version"
)

// options holds parsed command-line flags.
type options struct {
	configPath string
	lat, lon   float64
	tz         float64
	zone       string
	date       string
	days       int
	dip        float64
	summary    bool
	jsonPath   string
	now        bool
	logLevel   string
	version    bool

	// set records which flags were given explicitly.
	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("ls-sunmoon", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.Float64Var(&opts.lat, "lat", 0, "Observer latitude in degrees (north positive)")
	fs.Float64Var(&opts.lon, "lon", 0, "Observer longitude in degrees (east positive)")
	fs.Float64Var(&opts.tz, "tz", 0, "Timezone offset in hours east of UT")
	fs.StringVar(&opts.zone, "zone", "", "IANA timezone (e.g. Europe/Berlin), overrides -tz")
	fs.StringVar(&opts.date, "date", "", "First date YYYY-MM-DD (default today)")
	fs.IntVar(&opts.days, "days", 0, "Number of days")
	fs.Float64Var(&opts.dip, "dip", 0, "Horizon dip in degrees (default -0.833)")
	fs.BoolVar(&opts.summary, "summary", false, "Print text summary instead of TUI")
	fs.StringVar(&opts.jsonPath, "json", "", "Export JSON to file (use - for stdout)")
	fs.BoolVar(&opts.now, "now", false, "Single-line current Sun/Moon status")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// resolveConfig layers defaults, the config file, then explicit flags.
func resolveConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.set["lat"] {
		cfg.Observer.Latitude = opts.lat
	}
	if opts.set["lon"] {
		cfg.Observer.Longitude = opts.lon
	}
	if opts.set["lat"] || opts.set["lon"] {
		cfg.Observer.Name = ""
	}
	if opts.set["tz"] {
		cfg.Timezone.OffsetHours = opts.tz
		if !opts.set["zone"] {
			cfg.Timezone.Zone = ""
		}
	}
	if opts.set["zone"] {
		cfg.Timezone.Zone = opts.zone
	}
	if opts.set["days"] {
		cfg.Days = opts.days
	}
	if opts.set["dip"] {
		cfg.HorizonDip = opts.dip
	}
	if opts.set["log-level"] {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startDate parses -date, defaulting to today in the observer's zone.
func startDate(opts *options, ec ephem.Config, now time.Time) (time.Time, error) {
	if opts.date != "" {
		d, err := time.Parse("2006-01-02", opts.date)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid -date %q: want YYYY-MM-DD", opts.date)
		}
		return d, nil
	}
	return inObserverZone(ec, now), nil
}

func inObserverZone(ec ephem.Config, t time.Time) time.Time {
	if ec.Location != nil {
		return t.In(ec.Location)
	}
	return t.In(time.FixedZone("", int(ec.TZHours*3600)))
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if opts.version {
		fmt.Printf("ls-sunmoon v%s\n", version.Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	log := logger.Named("main")

	ec, err := cfg.Ephem()
	if err != nil {
		return err
	}
	log.Debug("observer %q at %.4f, %.4f, zone %q offset %.2fh, dip %.3f°",
		ec.Observer.Name, ec.Observer.LatDeg, ec.Observer.LonDeg, cfg.Timezone.Zone, ec.TZHours, ec.HorizonDip)

	calc, err := ephem.NewCalculator(ec, logger)
	if err != nil {
		return err
	}

	now := time.Now()
	start, err := startDate(opts, ec, now)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := opts.summary || opts.jsonPath != "" || opts.now || !isTTY
	if headless {
		return runHeadless(ctx, os.Stdout, calc, cfg, opts, start, now)
	}

	stateCfg := state.DefaultConfig()
	stateCfg.WeekDays = cfg.Days
	stateMgr := state.NewManager(calc, stateCfg, start)

	// The TUI owns the terminal; keep log lines off it.
	logger.SetOutput(io.Discard)

	p := tea.NewProgram(ui.New(stateMgr), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// runHeadless writes the requested outputs. With no output flag it prints
// the summary, which is what a pipe gets.
func runHeadless(ctx context.Context, w io.Writer, calc *ephem.Calculator, cfg *config.Config, opts *options, start, now time.Time) error {
	if opts.now {
		day, err := calc.Day(inObserverZone(calc.Config(), now))
		if err != nil {
			return err
		}
		sky, err := calc.SkyAt(now)
		if err != nil {
			return err
		}
		report.WriteNow(w, sky, day)
		return nil
	}

	days, err := calc.Range(ctx, start, cfg.Days)
	if err != nil {
		return err
	}

	if opts.jsonPath != "" {
		export := report.ExportAlmanac(calc.Config(), days, now)
		if opts.jsonPath == "-" {
			if err := export.WriteJSON(w); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(opts.jsonPath)
			if err != nil {
				return fmt.Errorf("create JSON file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	if opts.summary || opts.jsonPath == "" {
		if len(days) == 1 {
			report.WriteDay(w, days[0])
		} else {
			report.WriteSummaryTable(w, calc.Config(), days)
		}
	}
	return nil
}
