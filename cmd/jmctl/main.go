package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jmctl",
	Short: "Offline tools for the journal detection service",
	Long: `jmctl runs the detection toolchain outside the API server: building
word-vector files from the journal vocabulary, running connection detection
over stored entries, and querying the continuity record store.`,
}

func main() {
	rootCmd.AddCommand(buildVectorsCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(recordsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
