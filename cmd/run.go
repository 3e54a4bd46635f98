package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/hireloop/interviewer/internal/capture"
	"github.com/hireloop/interviewer/internal/catalog"
	"github.com/hireloop/interviewer/internal/interview"
	"github.com/hireloop/interviewer/internal/logger"
	"github.com/hireloop/interviewer/internal/speech"
)

const defaultTimeoutSeconds = 20

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one mock interview for the selected job role",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("job", "r", "", "job role key to interview for (see the jobs command)")
	runCmd.Flags().Bool("speak", false, "speak questions through a local text-to-speech binary")
	runCmd.Flags().Int("timeout", defaultTimeoutSeconds, "answer capture timeout in seconds")
	runCmd.Flags().StringP("export", "o", "", "write the finished session JSON to this file")
	runCmd.Flags().StringP("catalog", "c", "", "path to a YAML role catalog; built-in roles are used when unset")
	runCmd.Flags().String("answers", "", "scripted answers file (one answer per line) played back instead of live input")

	viper.BindPFlag("job", runCmd.Flags().Lookup("job"))
	viper.BindPFlag("speak", runCmd.Flags().Lookup("speak"))
	viper.BindPFlag("timeout", runCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("export", runCmd.Flags().Lookup("export"))
	viper.BindPFlag("catalog", runCmd.Flags().Lookup("catalog"))
	viper.BindPFlag("answers", runCmd.Flags().Lookup("answers"))
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interviewer", zap.String("version", version))

	cat, err := loadCatalog(config)
	if err != nil {
		logger.Fatal("loading the job catalog", zap.Error(err))
	}

	jobKey, err := selectJobKey(config, cat)
	if err != nil {
		logger.Fatal("selecting a job role",
			zap.Error(err),
			zap.Strings("known_keys", cat.Keys()),
			zap.String("hint", "pass --job or set the 'job' key in the configuration file"),
		)
	}

	// A bad job key must abort here, before any interview step exists.
	job, err := cat.Get(jobKey)
	if err != nil {
		logger.Fatal("resolving the job template", zap.Error(err))
	}

	speaker := buildSpeaker(config, logger)
	recognizer, err := buildRecognizer(config)
	if err != nil {
		logger.Fatal("loading scripted answers", zap.Error(err))
	}

	sink := interview.NewLogSink(logger)

	capturer := capture.New(recognizer, time.Duration(config.Timeout)*time.Second, logger)
	capturer.Manual = capture.TerminalPrompt
	capturer.Interim = func(text string) {
		sink.Event(interview.EventInterim, text)
	}

	controller := interview.NewController(jobKey, job, speaker, capturer, sink, logger)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if sig, ok := <-signals; ok {
			logger.Info("received signal, stopping the interview", zap.String("signal", sig.String()))
			controller.Stop()
		}
	}()

	session := controller.Run(ctx)

	if session.FinalScore != nil {
		logger.Info("interview finished",
			zap.String("session_id", session.ID),
			zap.Int("final_score", *session.FinalScore),
			zap.Int("steps", len(session.Steps)),
		)
	}

	if config.Export != "" {
		if err := interview.ExportFile(config.Export, session); err != nil {
			logger.Fatal("exporting the session", zap.Error(err))
		}
		logger.Info("session exported", zap.String("filename", config.Export))
	}
}

// selectJobKey resolves the role to interview for: the configured key when
// present, otherwise an interactive pick when running in a terminal.
func selectJobKey(config *Config, cat *catalog.Catalog) (string, error) {
	if key := strings.TrimSpace(config.Job); key != "" {
		return key, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("job key is required in non-interactive mode")
	}

	prompt := promptui.Select{
		Label: "Choose a job role",
		Items: cat.Keys(),
	}

	_, key, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return key, nil
}

func buildSpeaker(config *Config, logger *zap.Logger) speech.Speaker {
	if !config.Speak {
		return speech.NullSpeaker{}
	}

	speaker, err := speech.NewExecSpeaker(logger)
	if err != nil {
		logger.Warn("speech output unavailable, continuing log-only", zap.Error(err))
		return speech.NullSpeaker{}
	}

	logger.Info("speech output enabled", zap.String("speaker", speaker.Name()))
	return speaker
}

// buildRecognizer returns a scripted recognizer when an answers file is
// configured, and no recognizer at all otherwise, which makes every capture
// fall back to typed input.
func buildRecognizer(config *Config) (speech.Recognizer, error) {
	if config.Answers == "" {
		return nil, nil
	}

	data, err := os.ReadFile(config.Answers)
	if err != nil {
		return nil, fmt.Errorf("reading answers file %q: %w", config.Answers, err)
	}

	var answers []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		answers = append(answers, line)
	}

	if len(answers) == 0 {
		return nil, fmt.Errorf("answers file %q contains no answers", config.Answers)
	}

	return speech.NewScriptRecognizer(answers, 50*time.Millisecond), nil
}
