package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/xentpl/foundation/xentpl"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the token stream of a template",
	Long: `Runs only the lexer and prints one token per line:
source line, token type and payload.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	source, err := readSource(cmd, name)
	if err != nil {
		return err
	}

	c, err := xentpl.New(xentpl.Options{
		Logger:         current.logger,
		MaxStackDepth:  current.cfg.Compiler.MaxStackDepth,
		MaxInputLength: current.cfg.Compiler.MaxInputLength,
	})
	if err != nil {
		return err
	}

	tokens, err := c.Tokenize(source)
	if err != nil {
		return reportError(cmd, phrase("compile_failed", map[string]interface{}{"title": titleFromName(name)}), err)
	}

	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		fmt.Fprintf(out, "%4d  %-16s %q\n", tok.Line, tok.Type, tok.Value)
	}
	return nil
}
