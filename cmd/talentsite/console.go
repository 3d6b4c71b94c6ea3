package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hevilin/talentsite/internal/client"
	"github.com/hevilin/talentsite/internal/tui"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

var (
	apiURL   string
	apiToken string
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the back office console in the terminal",
	Long: `Open the administrator console against a running server. Tables refresh
live as candidates sign up and messages arrive.

A token from 'talentsite login' (or TALENTSITE_TOKEN) skips the sign-in screen
while it is still valid.`,
	RunE: runConsole,
}

// addAPIFlags registers the flags shared by the commands that talk to a
// running server.
func addAPIFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&apiURL, "api", "", "Server base URL (defaults to TALENTSITE_API, then "+defaultAPIURL+")")
	cmd.Flags().StringVar(&apiToken, "token", "", "Session token (defaults to TALENTSITE_TOKEN env var)")
}

func init() {
	addAPIFlags(consoleCmd)
	rootCmd.AddCommand(consoleCmd)
}

// apiClient builds a client from the flags and environment.
func apiClient() (*client.Client, error) {
	base := apiURL
	if base == "" {
		base = os.Getenv("TALENTSITE_API")
	}
	if base == "" {
		base = defaultAPIURL
	}
	c, err := client.New(base, client.DefaultOptions())
	if err != nil {
		return nil, err
	}
	c.SetToken(token())
	return c, nil
}

func token() string {
	if apiToken != "" {
		return apiToken
	}
	return os.Getenv("TALENTSITE_TOKEN")
}

func runConsole(_ *cobra.Command, _ []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(tui.NewConsoleModel(tui.ClientAPI{Client: c}, token()), tea.WithAltScreen()).Run()
	return err
}
