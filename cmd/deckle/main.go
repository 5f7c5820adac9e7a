package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okvist/deckle/internal/app"
	"github.com/okvist/deckle/internal/buffer"
	"github.com/okvist/deckle/internal/card"
	"github.com/okvist/deckle/internal/config"
	"github.com/okvist/deckle/internal/logger"
	"github.com/okvist/deckle/internal/region"
)

var version = "0.2.0"

var (
	configPath  string
	logLevel    string
	logFilePath string
	editLine    int

	cfg     *config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "deckle [file]",
	Short: "Toggle flashcard editing regions in markdown notes",
	Long: `deckle finds flashcards (numbered questions with '>' answer blocks)
inside '---' fenced sections of markdown notes, and toggles a reversible
editing transform over them: marker lines bracket the card and the answer
prefixes are stripped for free-form editing, then restored byte-for-byte.

Without a subcommand, deckle opens the file in an interactive viewer.`,
	Args:    cobra.ExactArgs(1),
	Version: version,
	RunE:    runTUI,
}

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Open the editing region around a line and write the file",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var doneCmd = &cobra.Command{
	Use:   "done <file>",
	Short: "Close the editing region and write the file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var cardsCmd = &cobra.Command{
	Use:   "cards <file>",
	Short: "List every card in the file with its line ranges",
	Args:  cobra.ExactArgs(1),
	RunE:  runCards,
}

var statusCmd = &cobra.Command{
	Use:   "status <file>",
	Short: "Report whether the file has an open editing region",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(editCmd, doneCmd, cardsCmd, statusCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)",
			config.AppName, config.DefaultConfigFileName))
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "", "Log level (debug, info, warn, error) - overrides config file")
	rootCmd.PersistentFlags().StringVar(&logFilePath, "logfile", "", "Path to write log file ('-' for stderr) - overrides config file")

	editCmd.Flags().IntVarP(&editLine, "line", "l", 0, "1-based line inside the card to edit (required)")
	_ = editCmd.MarkFlagRequired("line")
}

// initConfig loads the config file, applies flag overrides, and brings
// up the logger.
func initConfig() {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.NewDefaultConfig()
	}

	if logLevel != "" {
		cfg.Logger.LogLevel = logLevel
	}
	if logFilePath != "" {
		cfg.Logger.LogFilePath = logFilePath
	}

	logger.Init(cfg.Logger, openLogOutput(cfg.Logger.LogFilePath))
}

// openLogOutput resolves the logger destination. No destination means
// logs are discarded; "-" means stderr. Writing to stderr would corrupt
// the TUI, so nothing is a deliberate default.
func openLogOutput(path string) io.Writer {
	switch path {
	case "":
		return io.Discard
	case "-":
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %q: %v\n", path, err)
		return io.Discard
	}
	logFile = f
	return f
}

func newToggler() *region.Toggler {
	return region.NewToggler(cfg.Markers.Markers())
}

// loadDocument reads path into a line buffer, refusing silently-created
// empty buffers for files that genuinely do not exist.
func loadDocument(path string) (*buffer.SliceBuffer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", path, err)
	}
	buf := buffer.NewSliceBuffer()
	if err := buf.Load(path); err != nil {
		return nil, err
	}
	return buf, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := app.NewApp(cfg, args[0])
	if err != nil {
		return err
	}
	return a.Run()
}

func runEdit(cmd *cobra.Command, args []string) error {
	buf, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	if editLine < 1 || editLine > buf.LineCount() {
		return fmt.Errorf("line %d out of range (file has %d lines)", editLine, buf.LineCount())
	}

	out, err := newToggler().Enter(buf.Lines(), editLine-1)
	if err != nil {
		return err
	}
	buf.SetLines(out)
	if err := buf.Save(""); err != nil {
		return err
	}

	logger.Infof("Opened editing region in %s at line %d", args[0], editLine)
	fmt.Printf("%s: editing region opened around line %d\n", args[0], editLine)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	buf, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	out, err := newToggler().Exit(buf.Lines())
	if err != nil {
		return err
	}
	buf.SetLines(out)
	if err := buf.Save(""); err != nil {
		return err
	}

	logger.Infof("Closed editing region in %s", args[0])
	fmt.Printf("%s: editing region closed\n", args[0])
	return nil
}

func runCards(cmd *cobra.Command, args []string) error {
	buf, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	lines := buf.Lines()
	cards := card.All(lines)
	if len(cards) == 0 {
		fmt.Printf("%s: no cards found\n", args[0])
		return nil
	}

	for _, c := range cards {
		answers := len(card.AnswerLines(lines, c))
		question := strings.TrimSpace(lines[c.Question])
		fmt.Printf("%4d-%-4d %s (%d answer lines)\n", c.Start+1, c.End+1, question, answers)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	buf, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	t := newToggler()
	lines := buf.Lines()
	r, ok := t.FindRegion(lines)
	if !ok {
		fmt.Printf("%s: not editing\n", args[0])
		return nil
	}

	if r.AnswerStart >= 0 {
		fmt.Printf("%s: editing region at lines %d-%d (answers from line %d)\n",
			args[0], r.Start+1, r.End+1, r.AnswerStart+1)
	} else {
		fmt.Printf("%s: editing region at lines %d-%d (no answer block)\n",
			args[0], r.Start+1, r.End+1)
	}
	return nil
}

func main() {
	defer func() {
		if logFile != nil {
			logFile.Close()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
