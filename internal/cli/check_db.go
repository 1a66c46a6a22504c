package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"yukyu/internal/platform/db"
)

var validFormats = []string{"text", "yaml"}

func newCheckDBCommand(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check-db",
		Short: "Create the schema if needed and print tables with their columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(format) {
				return fmt.Errorf("invalid format %q: must be one of %v", format, validFormats)
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			database, err := db.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			tables, err := database.Tables(cmd.Context())
			if err != nil {
				return err
			}
			return writeTables(cmd.OutOrStdout(), cfg.DBPath, tables, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|yaml)")
	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

func writeTables(w io.Writer, path string, tables []db.Table, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"path": path, "tables": tables}); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "database: %s\n", path)
	for _, table := range tables {
		fmt.Fprintf(w, "\n%s\n", table.Name)
		for _, col := range table.Columns {
			pk := ""
			if col.PrimaryKey {
				pk = " PRIMARY KEY"
			}
			fmt.Fprintf(w, "  %-16s %s%s\n", col.Name, col.Type, pk)
		}
	}
	return nil
}
