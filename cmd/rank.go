package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-ranker/internal/corpus"
	"github.com/spigell/resume-ranker/internal/filtering"
	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/ranker"
	"github.com/spigell/resume-ranker/internal/report"
)

const (
	PromptSummary             = "Show summary"
	PromptRankingsToFile      = "Dump rankings to file"
	PromptAppendToExcludeFile = "Append shown candidates to exclude file"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank [files...]",
	Short: "Rank resumes against a job description",
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("job-description-file", "f", "", "file with the job description")
	rankCmd.Flags().String("job-description", "", "inline job description")
	rankCmd.Flags().String("dir", "", "directory with resumes (.txt, .md, .html, .htm)")
	rankCmd.Flags().String("csv", "", "resume dataset in CSV format")
	rankCmd.Flags().String("category", "", "keep only dataset rows of this category")
	rankCmd.Flags().StringP("format", "o", "", "output format: table, json, yaml or csv")
	rankCmd.Flags().String("output-file", "", "write the ranking into a file instead of stdout")
	rankCmd.Flags().Int("top", 0, "show only the first N candidates")
	rankCmd.Flags().Float64("min-score", 0, "drop candidates scoring below this percentage")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	rankCmd.Flags().StringSlice("disable-filter", nil, "filters to skip: excluded_candidates, exclude_file, minimum_score, top")
	rankCmd.Flags().StringP("keywords-file", "k", "", "yaml file with keyword weights")
	rankCmd.Flags().BoolP("yes", "y", false, "do not ask for follow-up actions")

	viper.BindPFlag("job-description-file", rankCmd.Flags().Lookup("job-description-file"))
	viper.BindPFlag("job-description", rankCmd.Flags().Lookup("job-description"))
	viper.BindPFlag("documents.dir", rankCmd.Flags().Lookup("dir"))
	viper.BindPFlag("documents.csv.path", rankCmd.Flags().Lookup("csv"))
	viper.BindPFlag("documents.csv.category", rankCmd.Flags().Lookup("category"))
	viper.BindPFlag("output.format", rankCmd.Flags().Lookup("format"))
	viper.BindPFlag("output.file", rankCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("filters.top", rankCmd.Flags().Lookup("top"))
	viper.BindPFlag("filters.minimum-score", rankCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("filters.exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("filters.disabled", rankCmd.Flags().Lookup("disable-filter"))
	viper.BindPFlag("keywords-file", rankCmd.Flags().Lookup("keywords-file"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	jobDescription, err := resolveJobDescription(config)
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err),
			zap.String("hint", "set job-description-file or job-description in the config or pass --job-description-file"),
		)
	}

	weights, err := resolveKeywords(config)
	if err != nil {
		logger.Fatal("parsing keywords", zap.Error(err))
	}

	mode, err := keywords.ParseMatchMode(config.KeywordMatch)
	if err != nil {
		logger.Fatal("parsing keyword match mode", zap.Error(err))
	}

	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}
	if format == report.FormatXLSX && config.Output.File == "" {
		logger.Fatal("xlsx output needs a file", zap.String("hint", "pass --output-file"))
	}

	steps, err := filtering.Prepare(config.Filters)
	if err != nil {
		logger.Fatal("preparing filters", zap.Error(err))
	}

	docs, err := loadDocuments(corpus.New(logger), config.Documents, args)
	if err != nil {
		logger.Fatal("loading resumes", zap.Error(err))
	}

	if len(docs) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes found"))
		return
	}

	logger.Info("resumes loaded", zap.Int("count", len(docs)))

	session := ranker.New(
		ranker.WithLogger(logger),
		ranker.WithWorkers(config.Workers),
		ranker.WithMatchMode(mode),
	)
	for _, doc := range docs {
		session.AddDocument(doc.ID, doc.Text)
	}

	if err := session.SetQuery(jobDescription, weights); err != nil {
		logger.Fatal("setting the job description", zap.Error(err))
	}

	results, err := session.ComputeRanking()
	if err != nil {
		logger.Fatal("ranking resumes", zap.Error(err))
	}

	rankings, err := filtering.Run(ctx, config.Filters, filtering.Deps{Logger: logger}, steps, report.New(results))
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}
	logger.Debug("candidates left", zap.Strings("ids", rankings.IDs()))

	if err := writeRankings(cmd.OutOrStdout(), config.Output.File, format, rankings); err != nil {
		logger.Fatal("writing rankings", zap.Error(err))
	}

	if config.Output.File != "" {
		logger.Info("rankings written", zap.String("filename", config.Output.File), zap.Int("count", rankings.Len()))
	}

	if rankings.Len() == 0 || !interactive(cmd, config) {
		return
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: promptItems(config.Filters.ExcludeFile),
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, rankings); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func interactive(cmd *cobra.Command, config *Config) bool {
	if cmd.Flag("yes").Value.String() == "true" || config.Output.File != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func promptItems(excludeFile string) []string {
	items := []string{PromptSummary, PromptRankingsToFile}
	if excludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func handleAction(action string, logger *zap.Logger, config *Config, rankings *report.Rankings) error {
	switch action {
	case PromptSummary:
		pretty, _ := json.MarshalIndent(report.Summarize(rankings.Items), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", rankings.Len()))
		return nil
	case PromptRankingsToFile:
		filename, err := rankings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump rankings to file: %w", err)
		}
		logger.Info("dumping rankings to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		excludeFile := config.Filters.ExcludeFile
		excluded, err := report.GetExcludedFromFile(excludeFile)
		if err != nil {
			return err
		}

		excluded.Append(rankings.ToExcluded(time.Now()))

		if err := excluded.ToFile(excludeFile); err != nil {
			return err
		}

		logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", rankings.Len()))
		return errExit
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func resolveJobDescription(config *Config) (string, error) {
	if file := strings.TrimSpace(config.JobDescriptionFile); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading job description from %q: %w", file, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("job description file %q is empty", file)
		}
		return string(data), nil
	}

	if strings.TrimSpace(config.JobDescription) == "" {
		return "", errors.New("job description is not configured")
	}
	return config.JobDescription, nil
}

// resolveKeywords returns explicit keyword weights. A keywords file wins over
// the inline keywords map. Keys are read verbatim, so they may contain dots.
func resolveKeywords(config *Config) (map[string]float64, error) {
	if file := strings.TrimSpace(config.KeywordsFile); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading keywords from %q: %w", file, err)
		}

		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing keywords file %q: %w", file, err)
		}
		return keywords.ParseWeights(raw)
	}

	if len(config.Keywords) == 0 {
		return nil, nil
	}
	return keywords.ParseWeights(config.Keywords)
}

func loadDocuments(loader *corpus.Loader, config *DocumentsConfig, args []string) ([]corpus.Document, error) {
	var docs []corpus.Document

	if config.Dir != "" {
		loaded, err := loader.LoadDir(config.Dir)
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}

	files := append(append([]string{}, config.Files...), args...)
	if len(files) > 0 {
		loaded, err := loader.LoadFiles(files...)
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}

	if config.CSV != nil && config.CSV.Path != "" {
		loaded, err := loader.LoadCSV(*config.CSV)
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}

	return docs, nil
}

func writeRankings(stdout io.Writer, file string, format report.Format, rankings *report.Rankings) error {
	if file == "" {
		return report.Write(stdout, format, rankings.Items)
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.Write(f, format, rankings.Items); err != nil {
		return err
	}
	return f.Close()
}
