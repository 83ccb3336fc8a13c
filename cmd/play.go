package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/ioequiz/internal/plain"
	"github.com/abhisek/ioequiz/internal/quiz"
	"github.com/abhisek/ioequiz/internal/sheet"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	Long: `Start a quiz in the full-screen UI, or with --plain as a line-by-line
dialogue on stdin/stdout. Plain mode commands: :hint, :skip, :jump N, :grid,
:play, :quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		usePlain, _ := cmd.Flags().GetBool("plain")
		reportPath, _ := cmd.Flags().GetString("report")

		var onPass func(*quiz.Session, quiz.Summary)
		if reportPath != "" {
			onPass = func(s *quiz.Session, sum quiz.Summary) {
				if err := writeReport(reportPath, s, sum); err != nil {
					fmt.Fprintln(os.Stderr, "report:", err)
				}
			}
		}

		if !usePlain {
			return runApp(cmd, onPass)
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		runner := plain.New(cmd.InOrStdin(), cmd.OutOrStdout(), plain.Options{
			Bank:           rt.bank,
			Player:         rt.cfg.Player,
			RNG:            rt.rng,
			Logger:         rt.log,
			Audio:          rt.audio,
			OnPassComplete: onPass,
		})
		return runner.Run(cmd.Context())
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "Line mode instead of the full-screen UI")
	playCmd.Flags().String("report", "", "Write each finished pass to this .xlsx file (overwritten per pass)")
}

// writeReport exports the pass results as a spreadsheet at path.
func writeReport(path string, s *quiz.Session, sum quiz.Summary) error {
	var buf bytes.Buffer
	if err := sheet.ExportResults(&buf, s, sum); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
