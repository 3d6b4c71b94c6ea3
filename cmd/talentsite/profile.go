package main

import (
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hevilin/talentsite/internal/profile"
	"github.com/hevilin/talentsite/internal/tui"
	"github.com/spf13/cobra"
)

var (
	profileInputs profile.Inputs
	profileLocale string
	profileJSON   bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Generate LinkedIn headline and about texts",
	Long: `Generate three headline options and two about sections from a few facts.

Without any field flags an interactive form opens in the terminal. With at
least one of --name, --role, --area, --years, --skills or --achievement the
texts are printed directly (as JSON with --json).`,
	RunE: runProfile,
}

var profileFieldFlags = []string{"name", "role", "area", "years", "skills", "achievement"}

func init() {
	f := profileCmd.Flags()
	f.StringVar(&profileInputs.Name, "name", "", "Full name")
	f.StringVar(&profileInputs.Role, "role", "", "Current or target role")
	f.StringVar(&profileInputs.Area, "area", "", "Area of expertise")
	f.StringVar(&profileInputs.YearsOfExperience, "years", "", "Years of experience")
	f.StringVar(&profileInputs.Skills, "skills", "", "Comma-separated skills")
	f.StringVar(&profileInputs.Achievement, "achievement", "", "Key achievement")
	f.StringVar(&profileLocale, "locale", "en", "Copy language (en, pt-BR)")
	f.BoolVar(&profileJSON, "json", false, "Print JSON instead of text")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	templates := profile.TemplatesFor(profileLocale)

	interactive := true
	for _, name := range profileFieldFlags {
		if cmd.Flags().Changed(name) {
			interactive = false
			break
		}
	}

	if interactive {
		_, err := tea.NewProgram(tui.NewProfileModel(templates), tea.WithOutput(cmd.OutOrStdout())).Run()
		return err
	}

	return writeProfile(cmd.OutOrStdout(), templates.Generate(profileInputs), profileJSON)
}

func writeProfile(w io.Writer, g profile.Generated, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	if _, err := fmt.Fprintln(w, "Headlines"); err != nil {
		return err
	}
	for i, h := range g.Headlines {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, h); err != nil {
			return err
		}
	}
	for i, a := range g.Abouts {
		if _, err := fmt.Fprintf(w, "\nAbout, option %d\n\n%s\n", i+1, a); err != nil {
			return err
		}
	}
	return nil
}
