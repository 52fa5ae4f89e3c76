package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AdminBXVentures/embedbroker/internal/config"
	"github.com/AdminBXVentures/embedbroker/internal/tableau"
)

var mintShowClaims bool

// mintCmd represents the mint command
var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Sign a Tableau embed token locally",
	Long: `Signs a Tableau embed token with the local configuration, without starting a server.
Useful to check a Connected App setup before deploying.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		tok, err := tableau.NewIssuer(cfg.Tableau).Issue()
		if err != nil {
			return fmt.Errorf("minting failed: %w", err)
		}
		log.Info().
			Str("jti", tok.ID).
			Time("exp", tok.ExpiresAt).
			Msgf("%s Minted token!", greenCheck)

		fmt.Println(tok.Value)
		if !mintShowClaims {
			return nil
		}

		claims, header, err := tableau.Parse(tok.Value, []byte(cfg.Tableau.ClientSecret))
		if err != nil {
			return fmt.Errorf("verifying minted token: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"header": header,
			"claims": claims,
		})
	},
}

func init() {
	rootCmd.AddCommand(mintCmd)

	mintCmd.Flags().BoolVar(&mintShowClaims, "claims", false, "Also print the decoded header and claims")
}
