package cmd

import (
	"fmt"

	"reliefctl/internal/config"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the release repository used when the configuration
// does not name one.
var githubRepoSlug = config.DefaultRepository

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update reliefctl to the latest version",
		Long: `Checks for the latest release of reliefctl on GitHub and
replaces the running binary when a newer version is available.

The release repository can be changed with update.repository in the
configuration file.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
}

// repositorySlug returns the configured release repository.
func repositorySlug() string {
	cfg, err := config.LoadConfigWithOverride(rootConfigPath)
	if err != nil || cfg.Update.Repository == "" {
		return githubRepoSlug
	}
	return cfg.Update.Repository
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	if currentVersion == "" || currentVersion == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	slug := repositorySlug()

	fmt.Fprintf(out, "Checking for updates to reliefctl %s in %s...\n", currentVersion, slug)
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(slug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s could not be found in %s", currentVersion, slug)
	}

	if latest.LessOrEqual(currentVersion) {
		fmt.Fprintf(out, "Current version (%s) is the latest.\n", currentVersion)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
	return nil
}
