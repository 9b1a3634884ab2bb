package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/config"
	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/scan"
	"github.com/lakshaymaurya-felt/winsweep/internal/trashbin"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Find reclaimable disk space",
	Long:  "Scan the selected categories (caches, temp files, build artifacts, trash store) and report what could be reclaimed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := scanOptionsFromFlags(cmd)
		if err != nil {
			return err
		}
		if !opts.Any() {
			fmt.Fprintln(os.Stderr, "No categories specified. Use --all or one of --cache, --temp, --build, --trash.")
			return nil
		}

		root, err := scanRoot(args)
		if err != nil {
			return err
		}

		if clear, _ := cmd.Flags().GetBool("clear-cache"); clear {
			if err := scan.ClearCache(); err != nil {
				return err
			}
		}

		settings := settingsFromFlags(cmd)
		noCache, _ := cmd.Flags().GetBool("no-cache")
		forceFull, _ := cmd.Flags().GetBool("force-full")

		var results *scan.Results
		fromCache := false
		if !noCache && !forceFull {
			results, fromCache = scan.LoadCached(root, opts)
		}
		if results == nil {
			bin, err := trashbin.Open()
			if err != nil {
				return err
			}
			results = scan.New(bin, settings).Scan(root, opts)
			if !noCache {
				scan.SaveCached(root, opts, results)
			}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		printScanResults(results, fromCache)
		printScanWarnings(results)
		return nil
	},
}

func init() {
	scanCmd.Flags().Bool("all", false, "Scan all categories")
	scanCmd.Flags().Bool("cache", false, "Scan application and browser caches")
	scanCmd.Flags().Bool("temp", false, "Scan temporary files")
	scanCmd.Flags().Bool("build", false, "Scan project build artifacts")
	scanCmd.Flags().Bool("trash", false, "Scan the trash store")
	scanCmd.Flags().Bool("json", false, "Output results as JSON")
	scanCmd.Flags().Int("project-age", 7, "Minimum project age in days before build artifacts count")
	scanCmd.Flags().String("min-size", "", "Minimum item size to report (e.g., 50MB)")
	scanCmd.Flags().StringSlice("exclude", nil, "Directory names to exclude")
	scanCmd.Flags().Bool("no-cache", false, "Skip the scan-result cache")
	scanCmd.Flags().Bool("force-full", false, "Ignore cached results and rescan")
	scanCmd.Flags().Bool("clear-cache", false, "Drop the scan-result cache first")
}

// scanOptionsFromFlags maps category flags to scan options; --all wins.
func scanOptionsFromFlags(cmd *cobra.Command) (scan.Options, error) {
	if all, _ := cmd.Flags().GetBool("all"); all {
		return scan.All(), nil
	}
	var opts scan.Options
	opts.Cache, _ = cmd.Flags().GetBool("cache")
	opts.Temp, _ = cmd.Flags().GetBool("temp")
	opts.Build, _ = cmd.Flags().GetBool("build")
	opts.Trash, _ = cmd.Flags().GetBool("trash")
	return opts, nil
}

// settingsFromFlags layers CLI flags over loaded settings.
func settingsFromFlags(cmd *cobra.Command) config.Settings {
	settings := config.LoadSettings()
	if cmd.Flags().Changed("project-age") {
		if days, err := cmd.Flags().GetInt("project-age"); err == nil && days >= 0 {
			settings.ProjectAgeDays = days
		}
	}
	if minSize, _ := cmd.Flags().GetString("min-size"); minSize != "" {
		if bytes, err := core.ParseSize(minSize); err == nil {
			settings.MinSizeBytes = bytes
		}
	}
	if exclude, _ := cmd.Flags().GetStringSlice("exclude"); len(exclude) > 0 {
		settings.Exclude = append(settings.Exclude, exclude...)
	}
	return settings
}

// scanRoot resolves the scan root: the argument or the current
// directory. The user's home tree is deliberately not the default;
// synced folders make it slow and surprising.
func scanRoot(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return os.Getwd()
}

func printScanResults(results *scan.Results, fromCache bool) {
	header := "Scan results"
	if fromCache {
		header += ui.Muted(" (cached)")
	}
	fmt.Println("\n  " + ui.Bold(header))
	fmt.Println()

	rows := []struct {
		label  string
		result scan.CategoryResult
	}{
		{"Caches", results.Cache},
		{"Temp files", results.Temp},
		{"Build artifacts", results.Build},
		{"Trash store", results.Trash},
	}
	for _, row := range rows {
		fmt.Printf("  %-16s %6d items  %10s\n",
			row.label, row.result.Items, core.FormatSize(row.result.Bytes))
	}

	fmt.Println()
	fmt.Printf("  %-16s %6d items  %10s\n",
		ui.Bold("Total"), results.TotalItems(), core.FormatSize(results.TotalBytes()))
}

func printScanWarnings(results *scan.Results) {
	for _, warning := range results.Warnings {
		fmt.Fprintln(os.Stderr, ui.Warn("Warning: ")+warning)
	}
}
