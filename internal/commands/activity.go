package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sixtey7/fjledger/internal/activity"
)

func newActivityCommand(dir *string) *cobra.Command {
	var (
		limit  int
		action string
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent ledger changes from the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			return withApp(*dir, func(a *app) error {
				if a.activity == nil {
					pterm.Warning.Println("Activity log is disabled in config")
					return nil
				}

				entries, err := activity.Read(a.activity.Path())
				if err != nil {
					return err
				}
				entries = filterActivity(entries, action, limit)
				if len(entries) == 0 {
					pterm.Info.Println("No activity recorded")
					return nil
				}
				return renderActivity(cmd.OutOrStdout(), entries)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many of the newest entries (0 for all)")
	cmd.Flags().StringVar(&action, "action", "", "only show entries with this action, e.g. add_transaction")

	return cmd
}

// filterActivity keeps entries matching action and trims to the newest limit.
func filterActivity(entries []activity.Entry, action string, limit int) []activity.Entry {
	if action != "" {
		var kept []activity.Entry
		for _, e := range entries {
			if strings.EqualFold(e.Action, action) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries
}
