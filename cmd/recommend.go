package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/filtering"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/logger"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/match"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/portal"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/recommend"
)

const (
	PromptShowBreakdown       = "Show match breakdown"
	PromptReportByCompanies   = "Report by companies"
	PromptManualDismiss       = "Dismiss jobs in manual mode"
	PromptJobsToFile          = "Dump recommendations to file"
	PromptExit                = "Exit"
	PromptBack                = "back"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Procced?",
	Items: []string{PromptShowBreakdown, PromptReportByCompanies, PromptManualDismiss, PromptJobsToFile, PromptExit},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank jobs for the candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().Int("min-score", match.DefaultMinimumScore, "drop jobs scoring below this value")
	recommendCmd.Flags().Int("limit", 20, "show at most this many jobs, 0 for all")
	recommendCmd.Flags().BoolP("include-applied", "a", false, "do not exclude jobs the candidate already applied to")
	recommendCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	recommendCmd.Flags().StringSlice("exclude-company", nil, "company to exclude, may be repeated")
	recommendCmd.Flags().BoolP("auto-approve", "y", false, "print the breakdown without asking")

	viper.BindPFlag("recommend.minimum-score", recommendCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("recommend.limit", recommendCmd.Flags().Lookup("limit"))
	viper.BindPFlag("recommend.include-applied", recommendCmd.Flags().Lookup("include-applied"))
	viper.BindPFlag("recommend.exclude-file", recommendCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("recommend.exclude-companies", recommendCmd.Flags().Lookup("exclude-company"))
}

func runRecommend(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ogrojatra matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	profile, jobs, err := loadInputs(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading inputs", zap.Error(err))
	}

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	ranked, err := recommend.Recommend(ctx, recommend.Deps{
		Scorer:  match.NewScorer().WithYear(config.Recommend.CurrentYear),
		Logger:  logger,
		Filters: prepareFilters(config, profile, logger),
	}, recommend.Options{Limit: config.Recommend.Limit}, profile, jobs)
	if err != nil {
		logger.Fatal("recommending jobs", zap.Error(err))
	}

	if ranked.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	auto := cmd.Flag("auto-approve").Value.String() == "true"

	for {
		action := PromptShowBreakdown
		if !auto {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of recommendations", zap.Int("count", ranked.Len()))

		if err := handleAction(action, logger, config, ranked); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if auto {
			return
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, jobs *portal.Jobs) error {
	switch action {
	case PromptShowBreakdown:
		showBreakdown(logger, jobs)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptManualDismiss:
		return manualDismiss(logger, config, jobs)
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(jobs.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", jobs.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := jobs.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showBreakdown(logger *zap.Logger, jobs *portal.Jobs) {
	for i, job := range jobs.Items {
		fields := []zap.Field{
			zap.Int("rank", i+1),
			zap.String("job_id", job.ID),
			zap.String("title", job.Title),
			zap.String("company", job.Company),
			zap.Int("match_score", job.MatchScoreValue()),
		}

		if job.Match != nil {
			details := job.Match.MatchDetails
			fields = append(fields,
				zap.Int("skill_score", details.SkillMatch.Score),
				zap.Int("experience_score", details.ExperienceMatch.Score),
				zap.Int("location_score", details.LocationMatch.Score),
				zap.Strings("missing_skills", details.SkillMatch.MissingSkills),
				zap.Strings("reasons", job.Match.Reasons()),
			)
		}

		logger.Info("recommended job", fields...)
	}
}

// manualDismiss lets the user drop jobs from the list and, when an exclude
// file is configured, remember them for later runs.
func manualDismiss(logger *zap.Logger, config *Config, jobs *portal.Jobs) error {
	excludeFile := strings.TrimSpace(config.Recommend.ExcludeFile)

	for {
		items := make([]string, 0, jobs.Len()+2)

		for _, job := range jobs.Items {
			label := fmt.Sprintf("%s %s / %s / %d",
				job.ID, job.Title, job.Company, job.MatchScoreValue(),
			)

			items = append(items, label)
		}

		if excludeFile != "" && jobs.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job to dismiss and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		switch selected {
		case PromptBack:
			return nil
		case PromptAppendToExcludeFile:
			if err := appendToExcludeFile(excludeFile, jobs); err != nil {
				return err
			}

			logger.Info("appended to exclude file", zap.String("filename", excludeFile))
		default:
			jobID := strings.Split(selected, " ")[0]

			job := jobs.FindByID(jobID)
			if job == nil {
				return fmt.Errorf("there is no such job id %s", jobID)
			}

			if excludeFile != "" {
				if err := appendToExcludeFile(excludeFile, &portal.Jobs{Items: []*portal.Job{job}}); err != nil {
					return err
				}
			}

			jobs.Exclude(portal.JobIDField, []string{jobID})

			logger.Info("dismissed job", zap.String("job_id", jobID), zap.String("title", job.Title))
		}
	}
}

// appendToExcludeFile records jobs in the exclude file and drops them from the list.
func appendToExcludeFile(path string, jobs *portal.Jobs) error {
	excluded, err := portal.GetExcludedJobsFromFile(path)
	if err != nil {
		return err
	}

	excluded.Append(jobs.ToExcluded(portal.ExcludeActorUser, "dismissed"))

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	jobs.Exclude(portal.JobIDField, excluded.JobIDs())
	return nil
}

func prepareFilters(config *Config, profile *portal.Profile, logger *zap.Logger) []filtering.Filter {
	steps := []filtering.Filter{
		filtering.NewMinimumScore(config.Recommend.MinimumScore, logger),
		filtering.NewApplied(&filtering.AppliedConfig{Ignore: config.Recommend.IncludeApplied}, profile, logger),
		filtering.NewExcludedCompanies(config.Recommend.ExcludeCompanies, logger),
		filtering.NewExcludeFile(config.Recommend.ExcludeFile, logger),
	}

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled), zap.Any("details", status.Details))
	}

	return steps
}
