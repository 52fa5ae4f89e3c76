package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AdminBXVentures/embedbroker/internal/config"
	"github.com/AdminBXVentures/embedbroker/internal/origin"
)

var configCheckOutput string

type envStatus struct {
	Name     string
	Feature  string
	Required bool
	Set      bool
	Secret   bool
}

func collectEnvStatus(cfg config.Config) []envStatus {
	return []envStatus{
		{Name: config.EnvOpenAIAPIKey, Feature: "chatkit", Required: true, Set: cfg.ChatKit.APIKey != "", Secret: true},
		{Name: config.EnvChatKitWorkflowID, Feature: "chatkit", Required: true, Set: cfg.ChatKit.WorkflowID != ""},
		{Name: config.EnvTableauClientID, Feature: "tableau", Required: true, Set: cfg.Tableau.ClientID != ""},
		{Name: config.EnvTableauClientKeyID, Feature: "tableau", Required: true, Set: cfg.Tableau.KeyID != ""},
		{Name: config.EnvTableauClientSecret, Feature: "tableau", Required: true, Set: cfg.Tableau.ClientSecret != "", Secret: true},
		{Name: config.EnvTableauUser, Feature: "tableau", Set: cfg.Tableau.User != ""},
		{Name: config.EnvAllowedOrigins, Feature: "cors", Set: len(cfg.AllowedOrigins) > 0},
	}
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check which settings are present",
	Long: `Loads the configuration exactly like 'serve' does and reports which variables are
set. Secret values are never printed. Exits non-zero if a required variable is missing.`,
	Example: `  embedbroker config check
  embedbroker config check --output yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if _, err := origin.NewAllowList(cfg.AllowedOrigins); err != nil {
			return fmt.Errorf("parsing %s: %w", config.EnvAllowedOrigins, err)
		}

		switch strings.ToLower(configCheckOutput) {
		case "yaml":
			data, err := cfg.RedactedYAML()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		case "table", "":
		default:
			return fmt.Errorf("unknown output format %q", configCheckOutput)
		}

		statuses := collectEnvStatus(cfg)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Variable", "Feature", "Required", "Status"})

		var missing []string
		for _, st := range statuses {
			status := green("set")
			if st.Secret && st.Set {
				status = green("set") + " " + faint("(secret)")
			}
			if !st.Set {
				if st.Required {
					status = red("missing")
					missing = append(missing, st.Name)
				} else {
					status = yellow("unset")
				}
			}
			required := faint("no")
			if st.Required {
				required = bold("yes")
			}
			t.AppendRow(table.Row{st.Name, st.Feature, required, status})
		}

		s := table.StyleRounded
		s.Format.Header = text.FormatDefault
		t.SetStyle(s)
		t.Render()

		if len(cfg.AllowedOrigins) == 0 {
			log.Warn().Msgf("%s is empty: browsers will be rejected", config.EnvAllowedOrigins)
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required variables: %s", strings.Join(missing, ", "))
		}
		log.Info().Msgf("%s Configuration is complete.", greenCheck)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)

	configCheckCmd.Flags().StringVarP(&configCheckOutput, "output", "o", "table", "Output format (table, yaml)")
}
