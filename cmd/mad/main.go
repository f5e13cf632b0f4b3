// Command mad inspects, extracts, and builds MAD game archives.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/meigma/mad"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mad",
		Short:        "Work with MAD game archives",
		Long:         "mad lists, extracts, and builds MAD archives, a minimal DOS-era game container format.",
		SilenceUsage: true,
	}
	root.AddCommand(
		newListCmd(),
		newCatCmd(),
		newExtractCmd(),
		newCreateCmd(),
	)
	return root
}

func newListCmd() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "list <archive>",
		Short: "List archive members in index order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := mad.Open(args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			for _, rec := range a.Index() {
				if long {
					fmt.Fprintf(out, "%10d %10d %10s  %s\n",
						rec.Offset, rec.Length, humanize.Bytes(uint64(rec.Length)), rec.Name)
				} else {
					fmt.Fprintln(out, rec.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show offset and size columns")
	return cmd
}

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <archive> <name>",
		Short: "Write a member's raw bytes to standard output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := mad.Open(args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.ReadFile(args[1])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <archive> [output-dir]",
		Short: "Extract every member into a directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 1 {
				dir = args[1]
			}

			a, err := mad.Open(args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Extract(dir)
		},
	}
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <archive> [input-dir]",
		Short: "Build an archive from the regular files in a directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 1 {
				dir = args[1]
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			return mad.CreateFile(cmd.Context(), args[0], dir, mad.CreateWithLogger(logger))
		},
	}
}
