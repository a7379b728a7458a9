package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomasbasham/cli-runtime/templates"

	"github.com/pdfdesk/service/internal/config"
	"github.com/pdfdesk/service/internal/file"
	"github.com/pdfdesk/service/internal/logging"
	"github.com/pdfdesk/service/internal/storage"
)

var (
	listLong = templates.LongDesc(`
		List every stored file, newest first, with its original name, human
		readable size and upload date.`)

	listExample = templates.Examples(`
		# Print a table
		pdfblob ls

		# Print JSON against a MinIO bucket
		pdfblob ls --driver minio --json`)
)

// ListOptions defines the options for the `ls` command.
type ListOptions struct {
	cfg *config.Config

	Driver string
	JSON   bool
}

func NewListOptions() *ListOptions {
	return &ListOptions{}
}

func NewListCommand(o *ListOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Short:   "List stored files, newest first",
		Long:    listLong,
		Example: listExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&o.Driver, "driver", "d", "", "Store driver: vercel, minio or memory (overrides STORE_DRIVER)")
	cmd.Flags().BoolVar(&o.JSON, "json", false, "Print the listing as JSON")

	return cmd
}

func (o *ListOptions) Complete(cmd *cobra.Command, args []string) error {
	o.cfg = config.Load()
	if o.Driver != "" {
		o.cfg.StoreDriver = o.Driver
	}
	return nil
}

func (o *ListOptions) Validate() error {
	return o.cfg.Validate()
}

func (o *ListOptions) Run(cmd *cobra.Command) error {
	logger := logging.Init(o.cfg.LogLevel, false)
	logConfigNotices(logger, o.cfg)
	ctx := logger.WithContext(cmd.Context())

	store, err := storage.Open(ctx, o.cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", o.cfg.StoreDriver, err)
	}

	entries, err := newService(o.cfg, store).List(ctx)
	if err != nil {
		return err
	}

	if o.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	return printEntries(cmd.OutOrStdout(), entries)
}

func printEntries(out io.Writer, entries []file.Entry) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tUPLOADED\tPATHNAME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.OriginalName, e.FormattedSize, e.FormattedDate, e.Pathname)
	}
	return tw.Flush()
}
