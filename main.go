// Simple PNG secret keeper
//
// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//
// Hides messages in ancillary chunks of PNG images, and finds, prints and
// removes them again. Also searches the text (tEXt) chunks of PNG images
// for a regex.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errNoMatch makes grep exit with 1 without printing an error.
var errNoMatch = errors.New("no match")

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	err := cmd.Execute()
	switch {
	case err == nil:
		os.Exit(0)
	case errors.Is(err, errNoMatch):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(2)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout, log: &NoopLogger{}}
	var verbose bool

	root := &cobra.Command{
		Use:           "pngme",
		Short:         "Hide, find and remove messages in PNG chunks",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				a.log = newStderrLogger(stderr)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log what is being done to stderr")

	var output string
	encodeCmd := &cobra.Command{
		Use:   "encode <file> <chunk type> <message>",
		Short: "Encode message into a new chunk appended to file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.encode(args[0], args[1], args[2], output)
		},
	}
	encodeCmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of modifying file in place")

	decodeCmd := &cobra.Command{
		Use:   "decode <file> <chunk type>",
		Short: "Print the first chunk of the given type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.decode(args[0], args[1])
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <file> <chunk type>",
		Short: "Remove the first chunk of the given type from file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.remove(args[0], args[1])
		},
	}

	printCmd := &cobra.Command{
		Use:   "print <file>",
		Short: "Print every chunk of file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(args[0])
		},
	}

	var caseins, showmatch bool
	grepCmd := &cobra.Command{
		Use:   "grep <regex> <file> [file, ...]",
		Short: "Print names of files whose tEXt chunks match regex",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.grep(args[0], args[1:], caseins, showmatch)
		},
	}
	grepCmd.Flags().BoolVarP(&caseins, "ignore-case", "i", false, "Make regexp case-insensitive")
	grepCmd.Flags().BoolVarP(&showmatch, "show", "w", false, "Show matching text chunks")

	root.AddCommand(encodeCmd, decodeCmd, removeCmd, printCmd, grepCmd)
	return root
}
