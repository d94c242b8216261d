package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/logger"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/portal"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/secrets"
)

const (
	sourceFile = "file"
	sourceAPI  = "api"

	tokenEnv = envPrefix + "_API_TOKEN"
)

// loadInputs returns the profile and the jobs, each taken from its export file
// when configured and from the portal API otherwise.
func loadInputs(ctx context.Context, config *Config, log *zap.Logger) (*portal.Profile, *portal.Jobs, error) {
	var client *portal.Client

	api := func() (*portal.Client, error) {
		if client != nil {
			return client, nil
		}

		c, err := newPortalClient(ctx, config, log)
		if err != nil {
			return nil, err
		}
		client = c
		return client, nil
	}

	profile, err := loadProfile(config, api)
	if err != nil {
		return nil, nil, err
	}

	jobs, err := loadJobs(config, api)
	if err != nil {
		return nil, nil, err
	}

	logger.WithCandidate(log, profile.ID, profileSource(config)).Info("inputs loaded",
		zap.Int("skills", len(profile.Skills)),
		zap.Int("jobs", jobs.Len()),
		zap.String("jobs_source", jobsSource(config)),
	)

	return profile, jobs, nil
}

func loadProfile(config *Config, api func() (*portal.Client, error)) (*portal.Profile, error) {
	if path := strings.TrimSpace(config.ProfileFile); path != "" {
		return portal.LoadProfileFile(path)
	}

	userID := strings.TrimSpace(config.API.UserID)
	if userID == "" {
		return nil, errors.New("either profile-file or api.user-id is required")
	}

	client, err := api()
	if err != nil {
		return nil, err
	}

	return client.GetProfile(userID)
}

func loadJobs(config *Config, api func() (*portal.Client, error)) (*portal.Jobs, error) {
	if path := strings.TrimSpace(config.JobsFile); path != "" {
		return portal.LoadJobsFile(path)
	}

	client, err := api()
	if err != nil {
		return nil, err
	}

	return client.GetJobs()
}

func newPortalClient(ctx context.Context, config *Config, log *zap.Logger) (*portal.Client, error) {
	token, err := resolveToken(config)
	if err != nil {
		return nil, fmt.Errorf("loading portal api token: %w", err)
	}

	client := portal.New(ctx, log, token)

	if u := strings.TrimSpace(config.API.URL); u != "" {
		client.APIURL = strings.TrimRight(u, "/")
	}

	if config.API.UserAgent != "" {
		client.UserAgent = config.API.UserAgent
	}

	return client, nil
}

// resolveToken reads the api token. The public job listing works without one.
func resolveToken(config *Config) (string, error) {
	return secrets.Optional(secrets.Source{
		Name: "portal api token",
		File: config.API.TokenFile,
		Env:  tokenEnv,
	})
}

func profileSource(config *Config) string {
	if strings.TrimSpace(config.ProfileFile) != "" {
		return sourceFile
	}
	return sourceAPI
}

func jobsSource(config *Config) string {
	if strings.TrimSpace(config.JobsFile) != "" {
		return sourceFile
	}
	return sourceAPI
}
