package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/logger"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/match"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/portal"
)

type scoreReport struct {
	Job     *portal.Job `json:"job"`
	Reasons []string    `json:"reasons,omitempty"`
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the match breakdown of a single job as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		runScore(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("job", "", "id of the job to score")
	scoreCmd.MarkFlagRequired("job")
}

func runScore(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	// keep stdout clean for the JSON report
	if !viper.GetBool("debug") {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	jobID, _ := cmd.Flags().GetString("job")

	profile, jobs, err := loadInputs(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading inputs", zap.Error(err))
	}

	scorer := match.NewScorer().WithYear(config.Recommend.CurrentYear)

	if err := writeScore(cmd.OutOrStdout(), scorer, profile, jobs, jobID); err != nil {
		logger.Fatal("scoring job", zap.String("job_id", jobID), zap.Error(err))
	}
}

func writeScore(w io.Writer, scorer *match.Scorer, profile *portal.Profile, jobs *portal.Jobs, jobID string) error {
	job := jobs.FindByID(strings.TrimSpace(jobID))
	if job == nil {
		return fmt.Errorf("there is no such job id %s", jobID)
	}

	result := scorer.Score(profile.Candidate(), job.Posting())

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scoreReport{Job: job.Scored(result), Reasons: result.Reasons()})
}
