package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/xentpl/foundation/core/i18n"
	xtlog "github.com/msto63/xentpl/foundation/core/log"
	"github.com/msto63/xentpl/foundation/xentpl"
	"github.com/msto63/xentpl/pkg/core/config"
	"github.com/msto63/xentpl/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
	locale  string
)

// errReported marks failures that were already printed
var errReported = errors.New("reported")

// session holds what every command needs after flag parsing
type session struct {
	cfg     *config.Config
	logger  *xtlog.Logger
	phrases *i18n.Manager
	logFile io.Closer
}

var current *session

var rootCmd = &cobra.Command{
	Use:   "xentpl",
	Short: "xentpl - Template Compiler",
	Long: `xentpl compiles XenForo-style templates into syntax trees.

Commands:
  compile  - Compile a template and print its tree
  tokens   - Print the token stream of a template
  cache    - Inspect or clear the compiled template cache
  version  - Show version information`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), "xentpl", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvConfigPath+" or ./xentpl.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "message locale (default: phrases.locale)")
}

func setup(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logCfg := logging.FromGeneral(cfg.General)
	logCfg.Output = cmd.ErrOrStderr()
	if verbose {
		logCfg.Level = "debug"
	}

	s := &session{cfg: cfg}
	if cfg.General.LogFile != "" {
		f, err := logging.OpenLogFile(cfg.General.LogFile)
		if err != nil {
			return err
		}
		logCfg.AdditionalOutputs = []io.Writer{f}
		s.logFile = f
	}
	s.logger = logging.NewLogger(logCfg)

	if locale == "" {
		locale = cfg.Phrases.Locale
	}
	s.phrases, err = xentpl.NewPhrases(locale, cfg.Phrases.Dir)
	if err != nil {
		return err
	}

	s.logger.Debug("configuration loaded", xtlog.Fields{"path": cfg.Path, "locale": locale})
	current = s
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if current != nil && current.logFile != nil {
		return current.logFile.Close()
	}
	return nil
}

// phrase renders a cli phrase, falling back to the key
func phrase(key string, data map[string]interface{}) string {
	if current == nil {
		return key
	}
	msg, err := current.phrases.TryT("cli."+key, data)
	if err != nil {
		return key
	}
	return msg
}

func printError(w io.Writer, msg string, err error) {
	text := err.Error()
	if current != nil {
		text = xentpl.Localize(current.phrases, err)
	}
	fmt.Fprintln(w, errorStyle.Render(msg+": ")+text)
}

// reportError prints err and marks it as reported
func reportError(cmd *cobra.Command, msg string, err error) error {
	printError(cmd.ErrOrStderr(), msg, err)
	return fmt.Errorf("%w: %v", errReported, err)
}

// openInput returns the named file or stdin for "" and "-"
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(name)
}
