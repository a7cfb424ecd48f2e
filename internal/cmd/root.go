// Package cmd provides the entrypoint and CLI command configuration for the
// lazyrating application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lccn-predictor/lazyrating/internal/ui"
	"github.com/lccn-predictor/lazyrating/internal/ui/theme"
)

func buildVersion(version, commit, date, builtBy string) string {
	result := version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	result = fmt.Sprintf("%s\ngoos: %s\ngoarch: %s", result, runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		result = fmt.Sprintf("%s\nmodule version: %s, checksum: %s", result, info.Main.Version, info.Main.Sum)
	}

	return result
}

// newRootCmd builds the command tree without running it.
func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lazyrating",
		Short: "A terminal UI for contest rating predictions.",
		Long: "A terminal UI for contest rating predictions.\n\n" +
			"Browse predicted contests, per-user rating changes and real-time charts.",
		Args: cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadDotEnv(".env")
		},
	}

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`lazyrating {{printf "version %s\n" .Version}}`)

	addConfigFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().String(
		"cpuprofile",
		"",
		"write cpu profile to file",
	)
	rootCmd.Flags().Duration(
		"refresh",
		ui.DefaultRefreshInterval,
		"reload interval of the active view, 0 disables",
	)
	rootCmd.Flags().String(
		"theme",
		"",
		"color theme, one of the built-in theme names",
	)
	rootCmd.Flags().BoolP(
		"help",
		"h",
		false,
		"help for lazyrating",
	)
	rootCmd.PersistentFlags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "api-url", "base-url":
			name = "api"
		case "redis":
			name = "cache"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.RunE = runTUI
	rootCmd.AddCommand(newPredictCmd(), newWhatIfCmd(), newExportCmd())
	return rootCmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cpuprofile, err := cmd.Flags().GetString("cpuprofile")
	if err != nil {
		return fmt.Errorf("parse cpuprofile flag: %w", err)
	}
	refresh, err := cmd.Flags().GetDuration("refresh")
	if err != nil {
		return fmt.Errorf("parse refresh flag: %w", err)
	}
	themeName, err := cmd.Flags().GetString("theme")
	if err != nil {
		return fmt.Errorf("parse theme flag: %w", err)
	}

	cfg, err := resolveConfig(cmd.Flags(), os.Getenv)
	if err != nil {
		return err
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := []ui.Option{
		ui.WithTracker(s.tracker),
		ui.WithLogger(s.logger),
		ui.WithRefreshInterval(refresh),
		ui.WithTrend(theme.TrendForLocale(theme.LocaleFromEnv(os.Getenv))),
	}

	// An explicit --theme wins over the stored preference; saving still
	// happens when the user cycles themes.
	path, err := prefsPath()
	if err != nil {
		s.logger.Warn("preferences disabled", "error", err)
	} else {
		if prefs, err := readPrefs(path); err != nil {
			s.logger.Warn("read preferences", "path", path, "error", err)
		} else if name := prefs[prefsThemeKey]; name != "" {
			opts = append(opts, ui.WithTheme(name))
		}
		opts = append(opts, ui.WithThemeSaver(func(name string) error {
			return saveThemePref(path, name)
		}))
	}
	if themeName != "" {
		if _, ok := theme.Lookup(themeName); !ok {
			return fmt.Errorf("unknown theme %q", themeName)
		}
		opts = append(opts, ui.WithTheme(themeName))
	}

	if cpuprofile != "" {
		file, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("create cpuprofile file: %w", err)
		}
		if err := pprof.StartCPUProfile(file); err != nil {
			_ = file.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = file.Close()
		}()
	}

	start := time.Now()
	app := ui.New(s.client, opts...)
	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run lazyrating: %w", err)
	}
	s.logger.Info("session finished", "duration", time.Since(start), "requests", s.tracker.Len())

	return nil
}

// Execute initializes and runs the lazyrating terminal application.
func Execute(version, commit, date, builtBy string) error {
	rootCmd := newRootCmd(buildVersion(version, commit, date, builtBy))
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rootCmd.Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}
