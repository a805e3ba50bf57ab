// Package cmd implements the vtree command line: server-side rendering of
// the demo application, tree dumps and a prerendering HTTP server.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vcrobe/vtree/config"
	"github.com/vcrobe/vtree/console"
)

// Version is set at build time.
var Version = "dev"

// rootOptions is the state shared by the subcommands of one root command.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

// NewRootCommand builds the command tree. Each call returns independent
// commands and configuration.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: viper.New()}
	config.SetDefaults(opts.v)

	rootCmd := &cobra.Command{
		Use:           "vtree",
		Short:         "Render virtual DOM trees to HTML and serve them.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.initializeConfig(); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(opts.v)
			if err != nil {
				console.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "vtree"})
				return err
			}
			opts.cfg = cfg
			console.InitializeLogger(cfg.Logger)
			console.Logger().Debug("starting vtree", zap.String("version", Version), zap.String("command", cmd.Name()))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./vtree.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newTreeCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))
	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		if logger := console.Logger(); logger != nil {
			logger.Error("command execution failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, err)
	}
	console.Sync()
	return err
}

// initializeConfig reads the config file and VTREE_ environment variables.
func (o *rootOptions) initializeConfig() error {
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		o.v.AddConfigPath(".")
		o.v.SetConfigName("vtree")
		o.v.SetConfigType("yaml")
	}

	o.v.SetEnvPrefix("VTREE")
	o.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	o.v.AutomaticEnv()

	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
