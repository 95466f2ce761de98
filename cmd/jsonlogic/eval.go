package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rulekit/jsonlogic"
)

type evalParams struct {
	ruleFile string
	dataFile string
	trace    bool
	report   bool
	maxDepth int
}

func init() {
	var params evalParams

	evalCommand := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a rule against a data file",
		Long:  "Evaluate a JsonLogic rule file against a JSON data file and print the computed value.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, params)
		},
	}

	addEvalFlags(evalCommand.Flags(), &params)
	_ = evalCommand.MarkFlagRequired("rule")
	rootCommand.AddCommand(evalCommand)
}

func addEvalFlags(fs *pflag.FlagSet, params *evalParams) {
	fs.StringVarP(&params.ruleFile, "rule", "r", "", "path to the JSON rule file")
	fs.StringVarP(&params.dataFile, "data", "d", "", "path to the JSON data file (optional)")
	fs.BoolVar(&params.trace, "trace", false, "print the executed-logic table")
	fs.BoolVar(&params.report, "report", false, "print the boxed evaluation report")
	fs.IntVar(&params.maxDepth, "max-depth", 0, "override the recursion limit")
}

func runEval(cmd *cobra.Command, params evalParams) error {
	var rule, data any
	if err := loadJSON(params.ruleFile, &rule); err != nil {
		return err
	}
	if params.dataFile != "" {
		if err := loadJSON(params.dataFile, &data); err != nil {
			return err
		}
	}

	var opts []jsonlogic.EvalOption
	if params.maxDepth > 0 {
		opts = append(opts, jsonlogic.MaxDepth(params.maxDepth))
	}

	result, err := jsonlogic.Apply(rule, data, opts...)
	if err != nil {
		return err
	}

	out, err := json.Marshal(result.Value)
	if err != nil {
		return errors.Wrap(err, "encoding result")
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if params.trace {
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
	}
	if params.report {
		m, _ := data.(map[string]any)
		fmt.Fprintln(cmd.OutOrStdout(), jsonlogic.Report(result, m))
	}
	return nil
}

func loadJSON(path string, v *any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}
