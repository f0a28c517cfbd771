package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/vokabel/internal/config"
	"github.com/abhisek/vokabel/internal/logging"
	"github.com/abhisek/vokabel/internal/store"
)

var (
	v      = config.New()
	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:           "vokabel",
	Short:         "Adaptive spaced-repetition vocabulary trainer",
	Long:          "Vokabel schedules German vocabulary reviews, picks quiz batches by priority and tracks daily progress.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(v, file)
		if err != nil {
			return err
		}
		l, err := logging.New(loaded.Log.Level, loaded.Log.Format, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: ./vokabel.yaml or $XDG_CONFIG_HOME/vokabel/vokabel.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides VOKABEL_DB env var)")
	flags.String("catalog-dir", "", "Directory holding output_<level>.json catalog files")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")

	mustBind(v, "store.path", "db")
	mustBind(v, "catalog.dir", "catalog-dir")
	mustBind(v, "log.level", "log-level")
	mustBind(v, "log.format", "log-format")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// mustBind binds a config key to a persistent flag. Flags only override
// config when set explicitly.
func mustBind(v *viper.Viper, key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// resolveDBPath returns the database path using the configured path
// (--db flag, config file or VOKABEL_STORE_PATH), then VOKABEL_DB, then the
// default XDG path.
func resolveDBPath() (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
