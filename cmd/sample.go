package cmd

import (
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/sample"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate sample resumes and job descriptions",
	Run: func(cmd *cobra.Command, _ []string) {
		generateSample(cmd)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().String("dir", "samples", "directory to write sample data into")
	sampleCmd.Flags().Uint64("seed", 0, "seed for the generated details. Default is random.")
}

func generateSample(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	dir, _ := cmd.Flags().GetString("dir")
	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	written, err := sample.New(logger, seed, time.Now()).Write(dir)
	if err != nil {
		logger.Fatal("writing sample data", zap.Error(err))
	}

	logger.Info("sample resumes generated",
		zap.Int("count", len(written.Resumes)),
		zap.String("dir", filepath.Join(dir, sample.ResumesDir)),
	)

	for _, job := range written.Jobs {
		logger.Info("sample job description generated",
			zap.String("title", job.Title),
			zap.String("hint", sampleRankHint(dir, job)),
		)
	}
}

func sampleRankHint(dir string, job sample.Job) string {
	return app + " rank --dir " + filepath.Join(dir, sample.ResumesDir) +
		" -f " + job.DescriptionFile + " -k " + job.KeywordsFile
}
