// Command gridpath builds a grid scenario, searches it and plays the path
// back in the terminal, or serves playback sessions over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdrpinto/gridpath/internal/config"
	"github.com/pdrpinto/gridpath/internal/logs"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v       *viper.Viper
	conf    config.Config
	logger  *zap.Logger
	cfgFile string
	envFile string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "gridpath",
		Short:         "Shortest paths on obstacle grids",
		Long:          `gridpath places obstacles on a grid, finds the shortest four-way path between two cells with A* and animates the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(a.v, a.cfgFile, a.envFile)
			if err != nil {
				return err
			}
			a.conf = conf
			a.logger = logs.New("gridpath", conf.Log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Uint64("seed", 0, "random seed, 0 picks one")
	flags.Duration("frame-delay", 500*time.Millisecond, "delay between playback frames")
	flags.Bool("plain", false, "print frames as text instead of drawing the terminal UI")
	bindFlags(a.v, flags, map[string]string{
		"log-level":   "log.level",
		"seed":        "scenario.seed",
		"frame-delay": "playback.frame_delay",
		"plain":       "playback.plain",
	})

	root.AddCommand(newScatterCmd(a), newPolygonCmd(a), newServeCmd(a))
	return root
}

// bindFlags maps flag names to config keys so a flag set on the command line
// overrides the file and the environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{v: config.NewViper()}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if a.logger != nil {
			a.logger.Error("gridpath failed", zap.Error(err))
			_ = a.logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
