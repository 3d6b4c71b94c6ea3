package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/types"
	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

var (
	loginEmail    string
	loginPassword string

	jobsAll bool

	jobTitle       string
	jobLocation    string
	jobType        string
	jobDescription string
	jobInactive    bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and print a session token",
	Long: `Sign in to a running server and print the session token, for use with
--token or TALENTSITE_TOKEN. The password defaults to ADMIN_PASSWORD.`,
	RunE: runLogin,
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List and publish job postings on a running server",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open jobs (all jobs with --all, which needs a token)",
	RunE:  runJobsList,
}

var jobsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Publish a job posting (needs a token)",
	RunE:  runJobsAdd,
}

func init() {
	addAPIFlags(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Administrator email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (defaults to ADMIN_PASSWORD env var)")
	_ = loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)

	addAPIFlags(jobsListCmd)
	jobsListCmd.Flags().BoolVar(&jobsAll, "all", false, "Include closed jobs")

	addAPIFlags(jobsAddCmd)
	jobsAddCmd.Flags().StringVar(&jobTitle, "title", "", "Job title (required)")
	jobsAddCmd.Flags().StringVar(&jobLocation, "location", "", "Location, e.g. Remote")
	jobsAddCmd.Flags().StringVar(&jobType, "type", "", "Contract type, e.g. CLT or PJ")
	jobsAddCmd.Flags().StringVar(&jobDescription, "description", "", "Description")
	jobsAddCmd.Flags().BoolVar(&jobInactive, "inactive", false, "Create the job closed for applications")
	_ = jobsAddCmd.MarkFlagRequired("title")

	jobsCmd.AddCommand(jobsListCmd, jobsAddCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}
	password := loginPassword
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	resp, err := c.Login(ctx, loginEmail, password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
	return err
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var jobs []db.Job
	if jobsAll {
		jobs, err = c.Jobs(ctx)
	} else {
		jobs, err = c.ActiveJobs(ctx)
	}
	if err != nil {
		return err
	}
	return writeJobs(cmd.OutOrStdout(), jobs)
}

func runJobsAdd(cmd *cobra.Command, _ []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	active := !jobInactive
	job, err := c.CreateJob(ctx, types.CreateJobRequest{
		Title:       jobTitle,
		Location:    jobLocation,
		Type:        jobType,
		Description: jobDescription,
		Active:      &active,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created job %s (%s)\n", job.Title, job.ID)
	return err
}

func writeJobs(w io.Writer, jobs []db.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No jobs.")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "LOCATION", "TYPE", "STATUS", "CREATED")
	for _, j := range jobs {
		status := "closed"
		if j.Active {
			status = "open"
		}
		t.Row(j.ID.String(), j.Title, j.Location, j.Type, status, j.CreatedAt.Format("2006-01-02"))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
