package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/history"
	"github.com/lakshaymaurya-felt/winsweep/internal/scan"
	"github.com/lakshaymaurya-felt/winsweep/internal/trashbin"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Free up disk space",
	Long: `Scan the selected categories and delete what was found.

Deletions go through the system trash store and are recorded in the
deletion history, so a session can be undone with 'ws restore'.
Permanent deletion (--permanent) bypasses the trash store and cannot
be undone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := scanOptionsFromFlags(cmd)
		if err != nil {
			return err
		}
		if !opts.Any() {
			opts = scan.All()
		}

		root, err := scanRoot(args)
		if err != nil {
			return err
		}

		bin, err := trashbin.Open()
		if err != nil {
			return err
		}

		orch := scan.New(bin, settingsFromFlags(cmd))
		orch.Quiet = quiet

		results := orch.Scan(root, opts)
		printScanWarnings(results)

		if results.TotalItems() == 0 {
			fmt.Println("Nothing to clean.")
			return nil
		}

		if dryRun {
			printScanResults(results, false)
			fmt.Println(ui.Muted("  Dry run; nothing was deleted."))
			return nil
		}

		permanent, _ := cmd.Flags().GetBool("permanent")
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(fmt.Sprintf("Delete %d items (%s)?",
			results.TotalItems(), core.FormatSize(results.TotalBytes()))) {
			fmt.Println("Cancelled.")
			return nil
		}

		summary, log, err := orch.Clean(results, scan.CleanOptions{
			Authorized: true,
			Permanent:  permanent,
			EmptyTrash: opts.Trash,
		})
		if err != nil {
			return err
		}

		// Persist the session even when every attempt failed; the
		// record of what was tried is part of the history contract.
		if len(log.Records) > 0 {
			store, err := history.OpenDefault()
			if err != nil {
				fmt.Fprintln(os.Stderr, ui.Warn("Warning: ")+"deletion history not saved: "+err.Error())
			} else if _, err := store.Write(log); err != nil {
				fmt.Fprintln(os.Stderr, ui.Warn("Warning: ")+"deletion history not saved: "+err.Error())
			}
		}

		if summary.Errors > 0 {
			fmt.Printf("Cleanup complete. %d items cleaned (%s), %d errors encountered.\n",
				summary.Cleaned, core.FormatSize(summary.Bytes), summary.Errors)
		} else {
			fmt.Printf("Cleanup complete. %d items cleaned (%s).\n",
				summary.Cleaned, core.FormatSize(summary.Bytes))
		}
		if !permanent && summary.Cleaned > 0 {
			fmt.Println(ui.Muted("Undo with 'ws restore'."))
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the cleanup plan without deleting")
	cleanCmd.Flags().Bool("all", false, "Clean all categories")
	cleanCmd.Flags().Bool("cache", false, "Clean application and browser caches")
	cleanCmd.Flags().Bool("temp", false, "Clean temporary files")
	cleanCmd.Flags().Bool("build", false, "Clean project build artifacts")
	cleanCmd.Flags().Bool("trash", false, "Empty the trash store")
	cleanCmd.Flags().Bool("permanent", false, "Bypass the trash store (cannot be undone)")
	cleanCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cleanCmd.Flags().Int("project-age", 7, "Minimum project age in days before build artifacts count")
	cleanCmd.Flags().String("min-size", "", "Minimum item size to clean (e.g., 50MB)")
	cleanCmd.Flags().StringSlice("exclude", nil, "Directory names to exclude")
}

// confirm asks a yes/no question on stdin, defaulting to no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
