package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-ranker/internal/corpus"
	"github.com/spigell/resume-ranker/internal/filtering"
)

const (
	app = "resume-ranker"
)

type Config struct {
	JobDescription     string            `mapstructure:"job-description"`
	JobDescriptionFile string            `mapstructure:"job-description-file"`
	Keywords           map[string]any    `mapstructure:"keywords"`
	KeywordsFile       string            `mapstructure:"keywords-file"`
	KeywordMatch       string            `mapstructure:"keyword-match"`
	Workers            int               `mapstructure:"workers"`
	Documents          *DocumentsConfig  `mapstructure:"documents"`
	Filters            *filtering.Config `mapstructure:"filters"`
	Output             *OutputConfig     `mapstructure:"output"`
	Server             *ServerConfig     `mapstructure:"server"`
}

type DocumentsConfig struct {
	Dir   string             `mapstructure:"dir"`
	Files []string           `mapstructure:"files"`
	CSV   *corpus.CSVOptions `mapstructure:"csv"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type ServerConfig struct {
	Addr        string        `mapstructure:"addr"`
	TokenFile   string        `mapstructure:"token-file"`
	MaxUploadMB int           `mapstructure:"max-upload-mb"`
	MaxSessions int           `mapstructure:"max-sessions"`
	SessionTTL  time.Duration `mapstructure:"session-ttl"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ranker ranks resumes against a job description with TF-IDF similarity and keyword matching",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("server.token-file", "RANKER_TOKEN_FILE"); err != nil {
		log.Fatalf("binding RANKER_TOKEN_FILE environment variable: %v", err)
	}

	viper.SetDefault("keyword-match", "substring")
	viper.SetDefault("workers", 1)
	viper.SetDefault("output.format", "table")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.max-upload-mb", 16)
	viper.SetDefault("server.max-sessions", 1000)
	viper.SetDefault("server.session-ttl", time.Hour)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("keyword-match", "", "keyword match mode: substring or token")
	rootCmd.PersistentFlags().Int("workers", 0, "goroutines used for scoring (default 1)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("keyword-match", rootCmd.PersistentFlags().Lookup("keyword-match"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func initConfig() {
	// Only rank and serve read the config.
	if rankCmd.CalledAs() == "" && serveCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Everything can come from flags, so only an explicit config file is mandatory.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Documents == nil {
		config.Documents = &DocumentsConfig{}
	}
	if config.Filters == nil {
		config.Filters = &filtering.Config{}
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	return config, nil
}
