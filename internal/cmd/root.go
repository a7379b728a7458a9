// Package cmd implements the pdfblob command line.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomasbasham/cli-runtime/templates"

	"github.com/pdfdesk/service/internal/config"
	"github.com/pdfdesk/service/internal/file"
	"github.com/pdfdesk/service/internal/storage"
)

var (
	rootLong = templates.LongDesc(`
		Blob object service for the PDF editor. Files are stored in Vercel Blob,
		an S3-compatible bucket or process memory, selected by STORE_DRIVER.`)

	// Injected at build time using ldflags.
	version = ""
	commit  = ""
)

// NewRootCommand creates the `pdfblob` command and its nested children.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "pdfblob [command]",
		Version:               versionInfo(),
		DisableFlagsInUseLine: true,
		Short:                 "Blob object service for the PDF editor",
		Long:                  rootLong,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}

	cmd.AddCommand(NewServeCommand(NewServeOptions()))
	cmd.AddCommand(NewListCommand(NewListOptions()))

	return cmd
}

func versionInfo() string {
	if version == "" {
		return ""
	}
	return fmt.Sprintf("%s (commit: %s)", version, commit)
}

// newService wires a file.Service over store, describing the store from cfg.
func newService(cfg *config.Config, store storage.Store) *file.Service {
	status := file.StatusNotConfigured
	if cfg.TokenPresent() {
		status = file.StatusConfigured
	}

	info := file.Info{
		StoreID: cfg.BlobStoreID,
		Region:  cfg.BlobRegion,
		BaseURL: cfg.BlobBaseURL,
		Driver:  cfg.StoreDriver,
		Status:  status,
	}
	if cfg.StoreDriver == config.DriverMinio {
		info.StoreID = cfg.StorageBucket
		info.Region = cfg.StorageRegion
		info.BaseURL = cfg.StoragePublicBase
	}

	return file.NewService(store, file.Options{Zone: cfg.DisplayZone, Info: info})
}

// logConfigNotices reports what config.Load noticed before logging existed.
func logConfigNotices(logger zerolog.Logger, cfg *config.Config) {
	if !cfg.EnvFileLoaded {
		logger.Debug().Msg("no .env file found, reading from environment")
	}
	for _, w := range cfg.Warnings {
		logger.Warn().Msg(w)
	}
}
