package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/digenv/core/config"
	"github.com/josephlewis42/digenv/core/logger"
	"github.com/josephlewis42/digenv/core/pipeline"
	"github.com/josephlewis42/digenv/core/vos"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// exitStatus carries the pipeline's status out of RunE.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "digenv [GREP ARGS...]",
	Short: "Study your environment variables.",
	Long: `digenv runs "printenv | sort | $PAGER", or "printenv | grep ARGS | sort | $PAGER"
when arguments are given. Every argument is passed to grep unchanged.

If PAGER is unset or can't be run, less is tried and then more.

The exit status is 0 if everything worked, 1 if the pipeline couldn't be
built, otherwise the status of the first stage that failed (128 plus the
signal number for a stage killed by a signal).`,
	// Arguments, including ones that look like flags, belong to grep.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		// Set by a previous Execute that ended with a failing stage.
		cmd.SilenceErrors = false

		stderr := cmd.ErrOrStderr()
		if !isTerminal(stderr) {
			color.NoColor = true
		}

		cfg, err := config.Load(afero.NewOsFs())
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.LoggerConfig())
		if err != nil {
			return err
		}
		defer log.Sync()

		p := pipeline.New(pipeline.Options{
			Commands: pipeline.Commands{
				Source: cfg.Source,
				Filter: cfg.Filter,
				Sort:   cfg.Sort,
			},
			Pager: pipeline.PagerResolver{
				Env:       cfg.PagerEnv,
				Fallbacks: cfg.FallbackPagers,
			},
			OS:     vos.Host(),
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: stderr,
			Log:    log.ForRun().Logger,
		}, args)

		if status := p.Run(); status != 0 {
			cmd.SilenceErrors = true
			return exitStatus(status)
		}
		return nil
	},
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Execute runs the root command and returns the process exit status.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() int {
	return exitCode(rootCmd.Execute())
}

func exitCode(err error) int {
	var status exitStatus
	switch {
	case err == nil:
		return 0
	case errors.As(err, &status):
		return int(status)
	default:
		return 1
	}
}
