package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/tabwriter"

	"github.com/shrimpsizemoose/trekker/logger"
	"github.com/spf13/cobra"

	"github.com/shrimpsizemoose/gradebook/internal/app"
	"github.com/shrimpsizemoose/gradebook/internal/handlers"
	"github.com/shrimpsizemoose/gradebook/internal/scoring"
)

// errRejected means the user already saw why the command did nothing.
var errRejected = errors.New("rejected")

type options struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "gradebook",
		Short:         "Record test scores and letter grades",
		Long:          "gradebook grades up to four test scores per student and appends them to a CSV log.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.toml", "Path to config file")

	root.AddCommand(
		newRecordCommand(opts),
		newGradeCommand(),
		newViewCommand(opts),
		newClearCommand(opts),
	)
	return root
}

func (o *options) loadConfig(cmd *cobra.Command) (*app.Config, error) {
	config, err := app.LoadConfig(o.configPath)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		logger.Info.Printf("No config at %s, using defaults", o.configPath)
		return app.DefaultConfig(), nil
	}
	return config, err
}

// withHandler builds the service for one command and flushes metrics afterwards.
func (o *options) withHandler(cmd *cobra.Command, fn func(*handlers.GradeHandler) error) error {
	config, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	service, err := app.NewService(cmd.Context(), config)
	if err != nil {
		return err
	}
	defer service.Close()

	err = fn(handlers.NewGradeHandler(service))

	if ferr := service.FlushMetrics(); ferr != nil {
		logger.Error.Printf("Failed to write metrics textfile: %v", ferr)
	}
	return err
}

func report(cmd *cobra.Command, msg handlers.Message) error {
	if !msg.OK {
		fmt.Fprintln(cmd.ErrOrStderr(), msg.Text)
		return errRejected
	}
	if msg.Text != "" {
		fmt.Fprintln(cmd.OutOrStdout(), msg.Text)
	}
	return nil
}

func newRecordCommand(opts *options) *cobra.Command {
	var student string

	cmd := &cobra.Command{
		Use:     "record --name NAME SCORE [SCORE...]",
		Short:   "Grade and record up to four test scores",
		Example: `  gradebook record --name "John Doe" 95 85`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withHandler(cmd, func(h *handlers.GradeHandler) error {
				resp, err := h.HandleSubmit(handlers.SubmitRequest{Student: student, Scores: args})
				if err != nil {
					return err
				}
				if resp.Summary != nil {
					out := cmd.OutOrStdout()
					for i, score := range resp.Summary.Scores {
						fmt.Fprintf(out, "Test %d: %d (%s)\n", i+1, score, resp.Summary.Grades[i])
					}
				}
				return report(cmd, resp.Message)
			})
		},
	}
	cmd.Flags().StringVarP(&student, "name", "n", "", "Student name")
	return cmd
}

func newGradeCommand() *cobra.Command {
	var maxScore int

	cmd := &cobra.Command{
		Use:   "grade SCORE [SCORE...]",
		Short: "Show letter grades without recording anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			grades, msg := handlers.NewGradeHandler(nil).HandleGrade(args, maxScore)
			if !msg.OK {
				return report(cmd, msg)
			}
			for i, g := range grades {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", strings.TrimSpace(args[i]), g)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxScore, "max", scoring.DefaultMaxScore, "Maximum possible score")
	return cmd
}

func newViewCommand(opts *options) *cobra.Command {
	var printRows bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the grade log (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withHandler(cmd, func(h *handlers.GradeHandler) error {
				secret, err := promptSecret(cmd)
				if err != nil {
					return err
				}

				if !printRows {
					msg, err := h.HandleView(cmd.Context(), secret)
					if err != nil {
						return err
					}
					return report(cmd, msg)
				}

				resp, err := h.HandleDump(cmd.Context(), secret)
				if err != nil {
					return err
				}
				if !resp.Message.OK {
					return report(cmd, resp.Message)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, row := range resp.Rows {
					fmt.Fprintln(tw, strings.Join(row, "\t"))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&printRows, "print", false, "Print the log instead of opening the viewer")
	return cmd
}

func newClearCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the grade log (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withHandler(cmd, func(h *handlers.GradeHandler) error {
				secret, err := promptSecret(cmd)
				if err != nil {
					return err
				}
				msg, err := h.HandleClear(cmd.Context(), secret)
				if err != nil {
					return err
				}
				return report(cmd, msg)
			})
		},
	}
}
