package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/sheet"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect, validate and convert question banks",
}

var bankCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a question bank and report every problem",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := bankPathArg(cmd, args)
		if err != nil {
			return err
		}
		b, err := question.Load(path)
		if err != nil {
			out := cmd.ErrOrStderr()
			fmt.Fprintln(out, "invalid bank:")
			for _, line := range problemLines(err) {
				fmt.Fprintln(out, "  -", line)
			}
			return errors.New("bank check failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions OK\n", b.Title, b.Len())
		return nil
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List the questions of a bank",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := bankPathArg(cmd, args)
		if err != nil {
			return err
		}
		b, err := question.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n", b.Title)
		fmt.Fprintf(out, "%4s  %-16s  %-44s  %s\n", "ID", "Type", "Question", "Answer")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, q := range b.Questions {
			text := q.Text
			if r := []rune(text); len(r) > 44 {
				text = string(r[:41]) + "..."
			}
			audio := ""
			if q.HasAudio() {
				audio = " ♪"
			}
			fmt.Fprintf(out, "%4d  %-16s  %-44s  %s%s\n",
				q.ID, q.Type().DisplayName(), text, q.CorrectAnswer, audio)
		}

		fmt.Fprintf(out, "\n%d questions\n", b.Len())
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export <out.xlsx>",
	Short: "Export a bank (--bank, default: built-in sample) to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := bankPathArg(cmd, nil)
		if err != nil {
			return err
		}
		b, err := question.Load(path)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := sheet.ExportBank(&buf, b); err != nil {
			return err
		}
		if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d questions to %s\n", b.Len(), args[0])
		return nil
	},
}

var bankImportCmd = &cobra.Command{
	Use:   "import <in.xlsx>",
	Short: "Convert a spreadsheet of questions into a bank JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		b, err := sheet.ImportBank(f, title)
		if err != nil {
			out := cmd.ErrOrStderr()
			fmt.Fprintln(out, "invalid spreadsheet:")
			for _, line := range problemLines(err) {
				fmt.Fprintln(out, "  -", line)
			}
			return errors.New("bank import failed")
		}
		if b.Title == "" {
			b.Title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		data, err := question.Encode(b)
		if err != nil {
			return err
		}
		if outPath == "" || outPath == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d questions to %s\n", b.Len(), outPath)
		return nil
	},
}

func init() {
	bankImportCmd.Flags().StringP("output", "o", "", "Output JSON file (default: stdout)")
	bankImportCmd.Flags().String("title", "", "Bank title (default: spreadsheet title or file name)")

	bankCmd.AddCommand(bankCheckCmd)
	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankImportCmd)
}

// bankPathArg returns the positional bank file if given, otherwise the
// configured bank (flag, env, .env). Empty means the built-in sample.
func bankPathArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.BankPath, nil
}

// problemLines flattens joined errors into one line per problem.
func problemLines(err error) []string {
	var lines []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
