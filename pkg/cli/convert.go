package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/salvage/pkg/domain/types"
	"github.com/m-mizutani/salvage/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdConvert() *cli.Command {
	var output string

	return &cli.Command{
		Name:      "convert",
		Usage:     "Reconstruct a ZIP artifact from a text dump file and write it to disk",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output path (default: input path with .zip extension)",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("expects exactly one input file")
			}
			path := c.Args().First()

			data, entries, err := reconstructFile(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("✗ %s", failureMessage(err)))
				return err
			}

			dest := output
			if dest == "" {
				dest = strings.TrimSuffix(path, ".txt") + ".zip"
			}

			if err := os.WriteFile(dest, data, 0644); err != nil {
				return goerr.Wrap(err, "failed to write artifact",
					goerr.V("path", dest))
			}

			ctxlog.From(ctx).Debug("Wrote artifact",
				"path", dest, "size_bytes", len(data))

			color.Green("✓ reconstructed %s (%d bytes)", dest, len(data))
			printEntries(entries)
			return nil
		},
	}
}

func cmdList() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "Reconstruct in memory and list archive entries without writing a file",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("expects exactly one input file")
			}

			_, entries, err := reconstructFile(c.Args().First())
			if err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("✗ %s", failureMessage(err)))
				return err
			}

			printEntries(entries)
			return nil
		},
	}
}

// reconstructFile runs the core pipeline over the contents of a text file
func reconstructFile(path string) ([]byte, []string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to read input file",
			goerr.V("path", path))
	}

	data, err := usecase.Reconstruct(string(raw))
	if err != nil {
		return nil, nil, err
	}

	return data, usecase.ScanEntryNames(data), nil
}

// failureMessage maps a reconstruction failure to a user-facing message
func failureMessage(err error) string {
	switch {
	case goerr.HasTag(err, types.TagEmptyInput):
		return "nothing to decode: the input has no content"
	case goerr.HasTag(err, types.TagInvalidEncoding):
		return "the input is not a valid base64 dump"
	default:
		return err.Error()
	}
}

func printEntries(entries []string) {
	if len(entries) == 0 {
		color.Yellow("no readable central directory; the archive may be damaged")
		return
	}

	fmt.Printf("%d entries:\n", len(entries))
	name := color.New(color.FgCyan)
	for _, e := range entries {
		fmt.Printf("  %s\n", name.Sprint(e))
	}
}
