package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"explorer/internal/config"
	"explorer/internal/engine"
	"explorer/internal/logger"
	"explorer/internal/source"
)

// unavailableMessage is printed instead of any query when loading fails.
const unavailableMessage = "The dataset could not be loaded. Please check the file path."

type rootOptions struct {
	configPath string
	file       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "explorer",
		Short:         "Explore fast-food restaurant locations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.file, "file", "", "CSV file to read, overriding the configured source")

	root.AddCommand(newMenuCmd(opts), newQueryCmd(opts), newExportCmd(opts))
	return root
}

// loadStore builds the store from --file or from the configured source.
// Failures are reported to the user as one static message.
func (o *rootOptions) loadStore(cmd *cobra.Command) (*engine.RecordStore, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := o.load(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), unavailableMessage)
		return nil, err
	}
	return store, nil
}

func (o *rootOptions) load(ctx context.Context) (*engine.RecordStore, error) {
	if o.file != "" {
		return engine.LoadAndClean(ctx, source.NewFileSource(o.file))
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	log := logger.NewStructured(cfg.Logging.Level, "console")

	src, closer, err := source.FromConfig(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	store, err := engine.LoadAndClean(ctx, src)
	if err != nil {
		log.WithError(err).Error("load failed", map[string]interface{}{"source": cfg.Source.Kind})
		return nil, err
	}
	log.Debug("load complete", map[string]interface{}{"records": store.Len()})
	return store, nil
}
