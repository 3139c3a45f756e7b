package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcraft-dev/jcraft/internal/compilecheck"
)

var checkJars []string

var checkCmd = &cobra.Command{
	Use:   "check <file.java>",
	Short: "Compile-check a Java source file against javac",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkJars, "jars", nil, "jars to put on javac's classpath")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	result, err := compilecheck.Run(context.Background(), string(source), checkJars)
	if err != nil {
		return fmt.Errorf("run compile check: %w", err)
	}

	if result.Success {
		fmt.Println("compiled cleanly")
		return nil
	}

	fmt.Print(result.Output)
	return fmt.Errorf("compile check failed")
}
