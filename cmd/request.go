package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AdminBXVentures/embedbroker/internal/audit"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Request a ChatKit client secret from a running server",
	Example: `  embedbroker session --server http://localhost:3000
  embedbroker session --server https://broker.example --origin https://app.example`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		secret, correlation, err := cli.ChatKitSession(cmd.Context())
		if err != nil {
			return logError(err, correlation, "session request failed")
		}
		log.Info().
			Str("correlation_id", correlation).
			Str("fingerprint", audit.Fingerprint(secret)).
			Msgf("%s Received client secret", greenCheck)
		fmt.Println(secret)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Request a Tableau embed token from a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		token, correlation, err := cli.TableauJWT(cmd.Context())
		if err != nil {
			return logError(err, correlation, "token request failed")
		}
		log.Info().
			Str("correlation_id", correlation).
			Str("token", truncate(token, 24)).
			Msgf("%s Received token", greenCheck)
		fmt.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(tokenCmd)

	bindRemoteFlags(sessionCmd.Flags())
	bindRemoteFlags(tokenCmd.Flags())
}
