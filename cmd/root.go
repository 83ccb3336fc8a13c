package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ioequiz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "ioequiz",
	Short: "English practice quiz for the IOE exam",
	Long: "ioequiz is a terminal quiz for IOE Grade 6 English practice: multiple choice,\n" +
		"fill in the blank and word ordering, with hints, a question grid and a score report.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("bank", "", "Question bank JSON file (overrides "+config.EnvBank+"; default: built-in sample)")
	flags.String("name", "", "Player name (overrides "+config.EnvPlayer+")")
	flags.Uint64("seed", 0, "Hint random seed (overrides "+config.EnvSeed+"; default: time-based)")
	flags.String("log-file", "", "Write logs to this file (overrides "+config.EnvLogFile+")")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides "+config.EnvLogLevel+")")
	flags.String("audio-cmd", "", "Command that plays an audio URL, e.g. \"mpv --really-quiet\" (overrides "+config.EnvAudioCmd+")")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads .env, then the environment, then applies any flags
// that were set on the command line.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("bank") {
		cfg.BankPath, _ = flags.GetString("bank")
	}
	if flags.Changed("name") {
		cfg.Player, _ = flags.GetString("name")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("audio-cmd") {
		cfg.AudioCmd, _ = flags.GetString("audio-cmd")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
