package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"toycheck/internal/checker"
	"toycheck/internal/config"
	"toycheck/internal/driver"
	"toycheck/internal/lexer"
)

// cli holds the flag values and output streams of one invocation.
type cli struct {
	stdout, stderr io.Writer

	configPath  string
	debug       bool
	trace       bool
	echo        bool
	tokens      bool
	symbols     bool
	strictPrint bool
	skipUnknown bool
	redeclare   string

	exitCode int
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

func (c *cli) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toycheck [flags] <file>...",
		Short: "Check toy-language programs for syntax and type errors",
		Long: `toycheck lexes, parses and type checks each file and prints one line per file:

  Valid input
  Invalid input: <first error>

The exit status is 0 when every file is valid, otherwise the code of the
first failing file's error kind.`,
		Version:       VERSION,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			c.exitCode = c.checkAll(args, cfg)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&c.configPath, "config", "c", "", "policy file (default "+config.DefaultPath+" if present)")
	f.BoolVar(&c.debug, "debug", false, "print progress messages")
	f.BoolVar(&c.trace, "trace", false, "print every statement and token as it is checked")
	f.BoolVar(&c.echo, "echo", false, "print the source before checking it")
	f.BoolVar(&c.tokens, "tokens", false, "only lex, printing the token stream")
	f.BoolVar(&c.symbols, "symbols", false, "list declared variables of valid programs")
	f.BoolVar(&c.strictPrint, "strict-print", false, "require print(x) arguments to be declared")
	f.BoolVar(&c.skipUnknown, "skip-unknown", false, "silently drop unrecognised characters")
	f.StringVar(&c.redeclare, "redeclare", config.RedeclareOverwrite, "redeclaration policy: overwrite or error")
	return cmd
}

// loadConfig applies, lowest first: defaults, the policy file, the
// environment, then flags given on the command line.
func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		c.printDebug("Loading config: " + c.configPath)
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath)
	}
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("strict-print") {
		cfg.Policy.PrintRequiresDeclaration = c.strictPrint
	}
	if f.Changed("skip-unknown") {
		cfg.Lexer.SkipUnknown = c.skipUnknown
	}
	if f.Changed("redeclare") {
		cfg.Policy.Redeclare = c.redeclare
	}
	if f.Changed("trace") {
		cfg.Trace = c.trace
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.printDebug(fmt.Sprintf("Policy: print_requires_declaration=%v redeclare=%s skip_unknown=%v",
		cfg.Policy.PrintRequiresDeclaration, cfg.Policy.Redeclare, cfg.Lexer.SkipUnknown))
	return cfg, nil
}

// checkAll checks every file and returns the exit code of the first
// failure, or 0.
func (c *cli) checkAll(paths []string, cfg *config.Config) int {
	opts := cfg.CheckerOptions()
	if cfg.Trace {
		opts.Tracef = func(format string, args ...any) {
			fmt.Fprintf(c.stdout, "[TRACE] "+format+"\n", args...)
		}
	}

	exitCode := 0
	for _, path := range paths {
		v := c.checkOne(path, opts)
		if len(paths) > 1 {
			fmt.Fprintf(c.stdout, "%s: %s\n", path, v)
		} else {
			fmt.Fprintln(c.stdout, v)
		}
		if v.Valid() && c.symbols && !c.tokens {
			c.printSymbols(v)
		}
		if exitCode == 0 {
			exitCode = v.ExitCode()
		}
	}
	return exitCode
}

func (c *cli) checkOne(path string, opts checker.Options) driver.Verdict {
	c.printDebug("Checking: " + path)
	src, err := driver.ReadSource(path)
	if err != nil {
		return driver.Verdict{Path: path, Err: err}
	}
	if c.echo {
		fmt.Fprintf(c.stdout, "\nInput from %s:\n\n%s\n", path, src)
	}
	if c.tokens {
		return c.dumpTokens(path, src, opts.Lexer)
	}
	v := driver.CheckSource(path, src, opts)
	c.printDebug(fmt.Sprintf("Finished %s: %s", path, v.Kind()))
	return v
}

func (c *cli) dumpTokens(path, src string, opts lexer.Options) driver.Verdict {
	tokens, err := lexer.Lex(src, opts)
	for _, tok := range tokens {
		fmt.Fprintf(c.stdout, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Value)
	}
	return driver.Verdict{Path: path, Err: err}
}

func (c *cli) printSymbols(v driver.Verdict) {
	for _, sym := range v.Symbols {
		fmt.Fprintf(c.stdout, "  %s\t%s\n", sym.Name, sym.Describe())
	}
}

/**
* Prints a debug message to stderr.
* @param message The message to print.
 */
func (c *cli) printDebug(message string) {
	if !c.debug {
		return
	}
	fmt.Fprintln(c.stderr, "[DEBUG] "+message)
}
