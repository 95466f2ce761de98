package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rulekit/jsonlogic/fixture"
)

func init() {
	testCommand := &cobra.Command{
		Use:   "test <file-or-url>",
		Short: "Run a fixture set of [rule, data, expected] triples",
		Long:  "Run a shared conformance fixture file (or URL, e.g. http://jsonlogic.com/tests.json) and report pass/fail counts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, args[0])
		},
	}
	rootCommand.AddCommand(testCommand)
}

func runTest(cmd *cobra.Command, source string) error {
	start := time.Now()

	var tests []fixture.Test
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		tests, err = fixture.Fetch(cmd.Context(), source)
	} else {
		tests, err = fixture.Load(source)
	}
	if err != nil {
		return err
	}
	logrus.Debugf("loaded %d tests from %s", len(tests), source)

	outcomes := fixture.Run(tests)
	passed, failed := fixture.Summary(outcomes)
	for _, o := range outcomes {
		if !o.Pass {
			logrus.Warn(o.String())
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s tests: %s passed, %s failed in %s\n",
		humanize.Comma(int64(len(outcomes))),
		humanize.Comma(int64(passed)),
		humanize.Comma(int64(failed)),
		time.Since(start).Round(time.Millisecond))

	if failed > 0 {
		return errors.Errorf("%d of %d tests failed", failed, len(outcomes))
	}
	return nil
}
