// Command peggen is the CLI surface over the grammar loader and codegen
// packages (§6 "CLI surface"): one binary, two subcommands, built on
// github.com/urfave/cli/v2 the way aksiksi-histweet/cli/main.go's
// buildCliApp/app.Run wires its own single-command app — generalized here
// to cli.Command subcommands of one app, the way mcgru-funxy ships one
// cmd/funxy binary rather than one binary per verb.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lk16/peggen/codegen"
)

func main() {
	app := buildCliApp()
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func buildCliApp() *cli.App {
	return &cli.App{
		Name:  "peggen",
		Usage: "generate and check staleness of parser artifacts from grammar files",
		Commands: []*cli.Command{
			generateParserCommand(),
			checkParserStalenessCommand(),
		},
	}
}

func generateParserCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate_parser",
		Usage:     "write the parser artifact if it is stale",
		ArgsUsage: "GRAMMAR_PATH ARTIFACT_PATH",
		Action: func(c *cli.Context) error {
			grammarPath, artifactPath, err := twoPositionalArgs(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if err := codegen.WriteIfStale(grammarPath, artifactPath); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func checkParserStalenessCommand() *cli.Command {
	return &cli.Command{
		Name:      "check_parser_staleness",
		Usage:     "exit 0 iff the parser artifact is up to date with its grammar",
		ArgsUsage: "GRAMMAR_PATH ARTIFACT_PATH",
		Action: func(c *cli.Context) error {
			grammarPath, artifactPath, err := twoPositionalArgs(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			upToDate, err := codegen.IsUpToDate(grammarPath, artifactPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return cli.Exit("", 1)
			}
			if !upToDate {
				return cli.Exit("peggen: artifact is stale", 1)
			}
			return nil
		},
	}
}

// twoPositionalArgs extracts GRAMMAR_PATH and ARTIFACT_PATH, rejecting any
// invocation with a different argument count (exit 1, §6).
func twoPositionalArgs(c *cli.Context) (grammarPath, artifactPath string, err error) {
	if c.NArg() != 2 {
		return "", "", fmt.Errorf("expected exactly 2 positional arguments: GRAMMAR_PATH ARTIFACT_PATH")
	}
	return c.Args().Get(0), c.Args().Get(1), nil
}
