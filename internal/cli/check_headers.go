package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"expiry_reminder_bot/internal/domain/registry"
	"expiry_reminder_bot/internal/infra/sheets"

	"github.com/spf13/cobra"
)

// NewCheckHeadersCommand resolves the registry header without touching any row.
func NewCheckHeadersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-headers",
		Short: "Show which registry column each field resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildComponents(cmd.Context(), opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer c.close()

			header, schema, err := c.service.ResolveSchema(cmd.Context())
			var schemaErr *registry.SchemaError
			if errors.As(err, &schemaErr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Header row: %q\n", header)
				return err
			}
			if err != nil {
				return err
			}

			return printSchema(cmd, header, schema)
		},
	}
}

func printSchema(cmd *cobra.Command, header []string, schema registry.Schema) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tCOLUMN\tHEADER")
	for _, f := range registry.Fields {
		col := schema.Column(f)
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.DisplayName(), sheets.ColumnLetters(col), header[col])
	}
	return w.Flush()
}
