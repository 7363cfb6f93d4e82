package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/wI2L/jsondiff"
	"go.uber.org/zap"

	skemadiff "github.com/reoring/skemadiff"
	"github.com/reoring/skemadiff/infer"
	"github.com/reoring/skemadiff/internal/fileio"
	"github.com/reoring/skemadiff/validate"
)

// errCheckFailed marks a completed run whose verdict is a failure (breaking
// schema change or invalid payload), as opposed to an operational error.
var errCheckFailed = errors.New("check failed")

func main() {
	logger, err := zap.NewDevelopment(zap.WithCaller(false))
	if err != nil {
		fmt.Fprintln(os.Stderr, "skemadiff: logger:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		if errors.Is(err, errCheckFailed) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "skemadiff",
		Short:         "detect breaking changes between structural schema versions",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newDiffCmd(logger))
	root.AddCommand(newInferCmd(logger))
	root.AddCommand(newValidateCmd(logger))
	return root
}

func newDiffCmd(logger *zap.Logger) *cobra.Command {
	var (
		fromPayloads bool
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "diff <base> <next>",
		Short: "compare two schema (or payload) documents and report breaking changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := fileio.LoadValue(args[0])
			if err != nil {
				return err
			}
			next, err := fileio.LoadValue(args[1])
			if err != nil {
				return err
			}

			baseSchema, nextSchema := base, next
			if fromPayloads {
				baseSchema = infer.Schema(base)
				nextSchema = infer.Schema(next)
				logger.Debug("inferred schemas from payloads",
					zap.String("base", args[0]), zap.String("next", args[1]))
			}

			report := skemadiff.Diff(baseSchema, nextSchema)
			if asJSON {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			} else {
				printReport(cmd, report)
				if fromPayloads {
					if err := printPayloadPatch(cmd, base, next); err != nil {
						logger.Warn("payload patch unavailable", zap.Error(err))
					}
				}
			}

			if report.BreakingCount > 0 {
				return fmt.Errorf("%d breaking change(s): %w", report.BreakingCount, errCheckFailed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromPayloads, "from-payloads", false, "treat inputs as example payloads and infer schemas first")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(cmd *cobra.Command, r skemadiff.Report) {
	w := cmd.OutOrStdout()
	breaking := color.New(color.FgRed, color.Bold)
	ok := color.New(color.FgGreen)

	if r.BreakingCount == 0 {
		ok.Fprintln(w, "no breaking changes")
	} else {
		breaking.Fprintf(w, "breaking changes: %d\n", r.BreakingCount)
	}
	for _, addr := range r.Breaking.RemovedRequired {
		fmt.Fprintf(w, "  removed required        %s\n", addr)
	}
	for _, addr := range r.Breaking.RequiredBecameOptional {
		fmt.Fprintf(w, "  required became optional %s\n", addr)
	}
	for _, tc := range r.Breaking.TypeChanged {
		fmt.Fprintf(w, "  type changed            %s (%s -> %s)\n", tc.Address, tc.Old, tc.New)
	}

	if n := len(r.NonBreaking.Added) + len(r.NonBreaking.RemovedOptional); n > 0 {
		fmt.Fprintf(w, "non-breaking changes: %d\n", n)
		for _, addr := range r.NonBreaking.Added {
			fmt.Fprintf(w, "  added                   %s\n", addr)
		}
		for _, addr := range r.NonBreaking.RemovedOptional {
			fmt.Fprintf(w, "  removed optional        %s\n", addr)
		}
	}
}

// printPayloadPatch renders an RFC6902 patch between the two example payloads
// as informational context next to the schema verdict.
func printPayloadPatch(cmd *cobra.Command, base, next any) error {
	patch, err := jsondiff.Compare(base, next)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return nil
	}
	out, err := json.MarshalIndent(patch, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "payload patch:")
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func newInferCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "infer <payload>",
		Short: "infer a normalized structural schema from an example payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := fileio.LoadValue(args[0])
			if err != nil {
				return err
			}
			schema := skemadiff.Normalize(infer.Schema(payload))
			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return err
			}
			logger.Debug("inferred schema", zap.String("payload", args[0]))
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newValidateCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema> <payload>",
		Short: "validate an example payload against a schema document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := fileio.LoadValue(args[0])
			if err != nil {
				return err
			}
			payload, err := fileio.LoadValue(args[1])
			if err != nil {
				return err
			}
			res, err := validate.New().Validate(cmd.Context(), schema, payload)
			if err != nil {
				// Schema compilation failures surface as-is.
				return err
			}
			if res.OK {
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			logger.Debug("payload failed validation", zap.Int("errors", len(res.Errors)))
			fmt.Fprintln(cmd.OutOrStdout(), validate.Render(res.Errors))
			return fmt.Errorf("payload is invalid: %w", errCheckFailed)
		},
	}
}
