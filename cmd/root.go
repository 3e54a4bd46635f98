package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hireloop/interviewer/internal/catalog"
)

const (
	app = "interviewer"
)

// Config is the application configuration, read from interviewer.yaml and
// flags.
type Config struct {
	// Catalog is an optional path to a YAML role catalog; the built-in
	// roles are used when empty.
	Catalog string `mapstructure:"catalog"`
	// Job selects the role to interview for.
	Job string `mapstructure:"job"`
	// Speak enables spoken questions through a local TTS binary.
	Speak bool `mapstructure:"speak"`
	// Timeout bounds each answer capture, in seconds.
	Timeout int `mapstructure:"timeout"`
	// Export is an optional path the finished session JSON is written to.
	Export string `mapstructure:"export"`
	// Answers is an optional path to a scripted answers file, one answer
	// per line, played back instead of live speech input.
	Answers string `mapstructure:"answers"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interviewer is a cli that runs an automated, turn-based mock interview for a chosen job role",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interviewer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config matters only for the commands that touch the catalog.
	if runCmd.CalledAs() == "" && jobsCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The defaults cover everything, so a missing config file is fine.
	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	err := viper.Unmarshal(config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// loadCatalog returns the configured role catalog. A catalog file wins over
// an inline "jobs" section of the config file; the built-in roles are the
// fallback when neither is present.
func loadCatalog(config *Config) (*catalog.Catalog, error) {
	if config != nil && config.Catalog != "" {
		return catalog.LoadFile(config.Catalog)
	}

	if jobs := viper.GetStringMap("jobs"); len(jobs) > 0 {
		return catalog.FromMap(jobs)
	}

	return catalog.Default(), nil
}
