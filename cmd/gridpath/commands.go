package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/config"
	"github.com/pdrpinto/gridpath/playback"
	"github.com/pdrpinto/gridpath/web"
)

func newScatterCmd(a *app) *cobra.Command {
	var startText, goalText string
	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Random obstacles on a small grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.conf.Scenario
			start, err := parseCell(startText, sc.Rows, sc.Cols)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			goal := gridpath.Cell{Row: sc.Rows - 1, Col: sc.Cols - 1}
			if cmd.Flags().Changed("goal") {
				if goal, err = parseCell(goalText, sc.Rows, sc.Cols); err != nil {
					return fmt.Errorf("goal: %w", err)
				}
			}
			scenario, err := gridpath.NewScatterScenario(sc.Rows, sc.Cols, start, goal,
				gridpath.NewSeededRand(sc.Seed), gridpath.WithObstacleCount(sc.Obstacles))
			if err != nil {
				return err
			}
			return a.solveAndPlay(cmd.Context(), cmd.OutOrStdout(), scenario)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&startText, "start", "0,0", "start cell as row,col")
	flags.StringVar(&goalText, "goal", "", "goal cell as row,col (default: bottom-right corner)")
	flags.Int("rows", gridpath.ScatterRows, "grid rows")
	flags.Int("cols", gridpath.ScatterCols, "grid columns")
	flags.Int("obstacles", gridpath.DefaultObstacleCount, "number of blocked cells")
	bindFlags(a.v, flags, map[string]string{
		"rows":      "scenario.rows",
		"cols":      "scenario.cols",
		"obstacles": "scenario.obstacles",
	})
	return cmd
}

func newPolygonCmd(a *app) *cobra.Command {
	var rows, cols int
	cmd := &cobra.Command{
		Use:   "polygon ROW,COL ROW,COL ROW,COL ROW,COL",
		Short: "Four blocked vertices with the goal at their center",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			vertices, err := parseVertices(args, rows, cols)
			if err != nil {
				return err
			}
			scenario, err := gridpath.NewPolygonScenario(rows, cols, vertices, gridpath.NewSeededRand(a.conf.Scenario.Seed))
			if err != nil {
				return err
			}
			return a.solveAndPlay(cmd.Context(), cmd.OutOrStdout(), scenario)
		},
	}
	cmd.Flags().IntVar(&rows, "rows", gridpath.PolygonRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", gridpath.PolygonCols, "grid columns")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve step-by-step playback sessions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gin.SetMode(a.conf.Server.GinMode)
			srv := web.NewServer(web.Config{
				Addr:       a.conf.Server.Addr,
				FrameDelay: a.conf.Playback.FrameDelay,
				SessionTTL: a.conf.Server.SessionTTL,
			}, a.logger)
			config.Watch(a.v, func(conf config.Config, err error) {
				if err != nil {
					a.logger.Warn("config reload rejected", zap.Error(err))
					return
				}
				srv.SetFrameDelay(conf.Playback.FrameDelay)
				a.logger.Info("config reloaded", zap.Duration("frame_delay", conf.Playback.FrameDelay))
			})
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	bindFlags(a.v, cmd.Flags(), map[string]string{"addr": "server.addr"})
	return cmd
}

// solveAndPlay searches the scenario, refuses to animate a path that fails
// validation and plays the result back.
func (a *app) solveAndPlay(ctx context.Context, out io.Writer, scenario *gridpath.Scenario) error {
	result, err := scenario.Solve(gridpath.WithLogger(a.logger))
	if err != nil {
		return err
	}
	if result.Found {
		if err := gridpath.CheckPath(result.Path, scenario.Grid); err != nil {
			return fmt.Errorf("refusing to play back: %w", err)
		}
	}
	a.logger.Info("search done",
		zap.Stringer("start", scenario.Start),
		zap.Stringer("goal", scenario.Goal),
		zap.Bool("found", result.Found),
		zap.Int("cost", result.Cost),
		zap.Int("expanded", result.ExpandedNodes),
	)

	player := &playback.Player{FrameDelay: a.conf.Playback.FrameDelay, Logger: a.logger}
	if a.conf.Playback.Plain {
		player.Renderer = playback.TextRenderer{Out: out}
		return ignoreCanceled(player.Play(ctx, scenario.Grid, result.Path))
	}

	term, err := playback.NewTerminalRenderer(nil)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer term.Close()
	player.Renderer = term
	if err := player.Play(ctx, scenario.Grid, result.Path); err != nil {
		return ignoreCanceled(err)
	}
	term.Hold(ctx)
	return nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
