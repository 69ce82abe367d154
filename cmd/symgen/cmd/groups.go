package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symgen/internal/ctxlog"
	"github.com/OpenTraceLab/kicad-symgen/internal/generate"
	"github.com/OpenTraceLab/kicad-symgen/pkg/pinout"
)

var groupsToStdout bool

var groupsCmd = &cobra.Command{
	Use:   "groups [table...]",
	Short: "Add a GROUP column to pin tables",
	Long: `Rewrite pin tables in place, inserting the GROUP column computed by the
classifier. Rows that already carry a group are left as written, so running
the command twice changes nothing.

Without arguments the tables of the job list are processed.

Examples:
  symgen groups
  symgen groups pin_extraction/SCC68070_PLCC84_complete.txt
  symgen groups --stdout cpu.txt`,
	RunE: runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)

	groupsCmd.Flags().BoolVar(&groupsToStdout, "stdout", false, "print the result instead of rewriting the file")
}

func runGroups(cmd *cobra.Command, args []string) error {
	if groupsToStdout {
		if len(args) != 1 {
			return fmt.Errorf("--stdout takes exactly one table")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open table: %w", err)
		}
		defer f.Close()
		return pinout.AddGroups(f, cmd.OutOrStdout())
	}

	if len(args) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return generate.AddGroupsAll(cmd.Context(), cfg)
	}

	logger := ctxlog.FromContext(cmd.Context())
	for _, path := range args {
		changed, err := generate.AddGroupsFile(path)
		if err != nil {
			return err
		}
		logger.Info("Processed pin table", "path", path, "changed", changed)
	}
	return nil
}
