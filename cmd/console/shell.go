package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// splitArgs splits a command line on spaces, honouring single and double
// quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}

// newShellCmd keeps one session across many commands so notifications and
// loaded lists survive between them. The guard still runs for every line.
func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "shell",
		Short:       "Run console commands interactively",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipGuard: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			for {
				line, err := a.readLine("sarb> ")
				if line != "" {
					args, perr := splitArgs(line)
					switch {
					case perr != nil:
						fmt.Fprintln(a.errOut, "Error:", perr)
					case args[0] == "exit" || args[0] == "quit":
						return nil
					case args[0] == "shell":
						fmt.Fprintln(a.errOut, "Error: already in the shell")
					default:
						// a fresh tree per line so flag state never leaks between commands
						execute(ctx, newRootCmd(a), args)
					}
				}
				if err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					return err
				}
				if ctx.Err() != nil {
					return nil
				}
			}
		},
	}
}
