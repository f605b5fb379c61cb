package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-sunmoon/internal/astro"
	"github.com/litescript/ls-sunmoon/internal/ephem"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-lat", "52.52", "-lon", "13.405", "-zone", "Europe/Berlin", "-days", "3", "-summary"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.lat != 52.52 || opts.lon != 13.405 || opts.zone != "Europe/Berlin" || opts.days != 3 || !opts.summary {
		t.Errorf("opts = %+v", opts)
	}
	for _, name := range []string{"lat", "lon", "zone", "days", "summary"} {
		if !opts.set[name] {
			t.Errorf("flag %q not recorded as set", name)
		}
	}
	if opts.set["tz"] || opts.set["dip"] {
		t.Error("unset flags recorded as set")
	}

	if _, err := parseFlags([]string{"-days", "many"}); err == nil {
		t.Error("parseFlags accepted a non-numeric -days")
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sunmoon.yaml")
	yaml := "observer:\n  name: Home\n  latitude: 40\n  longitude: -74\ntimezone:\n  zone: America/New_York\ndays: 5\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := parseFlags([]string{"-config", path, "-days", "2", "-dip", "-6"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if cfg.Observer.Name != "Home" || cfg.Observer.Latitude != 40 {
		t.Errorf("observer = %+v, want file values", cfg.Observer)
	}
	if cfg.Days != 2 || cfg.HorizonDip != -6 {
		t.Errorf("Days = %d, HorizonDip = %v, want flags to win", cfg.Days, cfg.HorizonDip)
	}
	if cfg.Timezone.Zone != "America/New_York" {
		t.Errorf("Zone = %q, want file zone", cfg.Timezone.Zone)
	}

	// -tz replaces a zone from the file.
	opts, _ = parseFlags([]string{"-config", path, "-tz", "-5", "-lat", "41"})
	cfg, err = resolveConfig(opts)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timezone.Zone != "" || cfg.Timezone.OffsetHours != -5 {
		t.Errorf("timezone = %+v, want fixed -5", cfg.Timezone)
	}
	if cfg.Observer.Name != "" || cfg.Observer.Latitude != 41 {
		t.Errorf("observer = %+v, want name cleared and latitude 41", cfg.Observer)
	}
}

func TestResolveConfig_Invalid(t *testing.T) {
	opts, _ := parseFlags([]string{"-lat", "100"})
	if _, err := resolveConfig(opts); !errors.Is(err, astro.ErrNumericDomain) {
		t.Errorf("error = %v, want ErrNumericDomain", err)
	}

	opts, _ = parseFlags([]string{"-days", "0"})
	if _, err := resolveConfig(opts); !errors.Is(err, astro.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestStartDate(t *testing.T) {
	now := time.Date(2024, 6, 21, 23, 30, 0, 0, time.UTC)

	opts := &options{date: "2024-03-20"}
	d, err := startDate(opts, ephem.Config{}, now)
	if err != nil || d.Month() != time.March || d.Day() != 20 {
		t.Errorf("startDate(-date) = %v, %v", d, err)
	}

	// Half past eleven UT is already the 22nd two hours east.
	d, err = startDate(&options{}, ephem.Config{TZHours: 2}, now)
	if err != nil || d.Day() != 22 {
		t.Errorf("startDate(tz=2) = %v, %v, want the 22nd", d, err)
	}

	if _, err := startDate(&options{date: "21/06/2024"}, ephem.Config{}, now); err == nil {
		t.Error("startDate accepted a malformed date")
	}
}

func headlessFixture(t *testing.T, args ...string) (*ephem.Calculator, *options, func(*bytes.Buffer) error) {
	t.Helper()
	opts, err := parseFlags(append([]string{"-lat", "51.5", "-lon", "0", "-date", "2024-06-21"}, args...))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		t.Fatal(err)
	}
	ec, err := cfg.Ephem()
	if err != nil {
		t.Fatal(err)
	}
	calc, err := ephem.NewCalculator(ec, nil)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	start, err := startDate(opts, ec, now)
	if err != nil {
		t.Fatal(err)
	}
	return calc, opts, func(buf *bytes.Buffer) error {
		return runHeadless(context.Background(), buf, calc, cfg, opts, start, now)
	}
}

func TestRunHeadless_Summary(t *testing.T) {
	_, _, run := headlessFixture(t, "-summary", "-days", "3")
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "Total: 3 day(s)") || !strings.Contains(out, "03:43") {
		t.Errorf("summary output:\n%s", out)
	}
}

func TestRunHeadless_SingleDayCard(t *testing.T) {
	_, _, run := headlessFixture(t, "-days", "1")
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Friday 2024-06-21") {
		t.Errorf("day card output:\n%s", buf.String())
	}
}

func TestRunHeadless_JSONStdout(t *testing.T) {
	_, _, run := headlessFixture(t, "-json", "-", "-days", "2")
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Days []struct {
			Date string `json:"date"`
		} `json:"days"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(doc.Days) != 2 || doc.Days[0].Date != "2024-06-21" || doc.Days[1].Date != "2024-06-22" {
		t.Errorf("days = %+v", doc.Days)
	}
}

func TestRunHeadless_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.json")
	_, _, run := headlessFixture(t, "-json", path)
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("stdout should be empty with -json FILE, got %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("file is not valid JSON")
	}
}

func TestRunHeadless_Now(t *testing.T) {
	_, _, run := headlessFixture(t, "-now")
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "12:00 ☀ up") {
		t.Errorf("now line = %q", buf.String())
	}
}
