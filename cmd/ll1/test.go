package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/ll1/tester"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	failedOnly *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  ll1 test grammar.ll1 test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.failedOnly = cmd.Flags().Bool("failed-only", false, "print failed test cases only")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cg, err := readCompiledGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	if cg.Lexical == nil {
		return fmt.Errorf("Cannot run test: the grammar %v has no token patterns", cg.Name)
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar: cg,
		Cases:   cs,
	}
	rs := t.Run()
	failed := 0
	for _, r := range rs {
		if r.Error != nil {
			failed++
			pterm.Error.Println(r)
			continue
		}
		if !*testFlags.failedOnly {
			pterm.Success.Println(r)
		}
	}
	if failed > 0 {
		return fmt.Errorf("Test failed: %v of %v cases", failed, len(rs))
	}
	return nil
}
