package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/match"
)

const (
	app       = "ogrojatra"
	envPrefix = "OGROJATRA"
)

type Config struct {
	ProfileFile string          `mapstructure:"profile-file"`
	JobsFile    string          `mapstructure:"jobs-file"`
	API         APIConfig       `mapstructure:"api"`
	Recommend   RecommendConfig `mapstructure:"recommend"`
}

type APIConfig struct {
	URL       string `mapstructure:"url" validate:"omitempty,url"`
	UserID    string `mapstructure:"user-id"`
	TokenFile string `mapstructure:"token-file"`
	UserAgent string `mapstructure:"user-agent"`
}

type RecommendConfig struct {
	MinimumScore     int      `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
	Limit            int      `mapstructure:"limit" validate:"gte=0"`
	CurrentYear      int      `mapstructure:"current-year" validate:"gte=0"`
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
	ExcludeFile      string   `mapstructure:"exclude-file"`
	IncludeApplied   bool     `mapstructure:"include-applied"`
}

var (
	// Used for flags.
	cfgFile string

	validate = validator.New(validator.WithRequiredStructEnabled())

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ogrojatra ranks Ogrojatra portal jobs against a candidate profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ogrojatra.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("profile-file", "", "candidate profile exported as JSON")
	rootCmd.PersistentFlags().String("jobs-file", "", "jobs exported as JSON")
	rootCmd.PersistentFlags().Int("current-year", 0, "year used to derive experience (default is the current year)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("profile-file", rootCmd.PersistentFlags().Lookup("profile-file"))
	viper.BindPFlag("jobs-file", rootCmd.PersistentFlags().Lookup("jobs-file"))
	viper.BindPFlag("recommend.current-year", rootCmd.PersistentFlags().Lookup("current-year"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("recommend.minimum-score", match.DefaultMinimumScore)
	v.SetDefault("recommend.limit", 20)
	v.SetDefault("api.url", "")
	v.SetDefault("api.user-id", "")
	v.SetDefault("api.token-file", "")
	v.SetDefault("api.user-agent", "")
	v.SetDefault("recommend.exclude-file", "")
	v.SetDefault("recommend.exclude-companies", []string{})
}

func initConfig() {
	// .env is optional; real environment variables always win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Flags and env are enough when no config file is around.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validate.Struct(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
