package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/tablefsm"
	"github.com/comalice/tablefsm/internal/config"
)

func (a *App) newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a table file",
		Long: `Validate a state table file.

This command checks:
  - YAML syntax
  - State names are present and unique
  - Every next entry names a known state
  - The built table has no holes and ids match positions

Examples:
  tablefsm validate -c traffic.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to table file")
	return cmd
}

func (a *App) validate(path string) error {
	if path == "" {
		return errors.New("table file path is required (-c flag)")
	}

	table, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	states, err := table.Build()
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := tablefsm.Validate(states); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "table %q is valid: %d states\n", table.Name, len(states))
	for i, s := range states {
		fmt.Fprintf(a.stdout, "  %d  %s\n", i, s.Name())
	}
	return nil
}
