package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AdminBXVentures/embedbroker/pkg/client"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()

	greenCheck = color.GreenString("✔")
)

// remote flags shared by the commands talking to a running server
var clientOrigin string

func bindRemoteFlags(flags *pflag.FlagSet) {
	flags.StringVar(&clientOrigin, "origin", "", "Origin header to send, as a browser would")
}

func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(ServerAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured, provide via --server or EMBEDBROKER_SERVER")
	}
	return client.New(server, client.WithOrigin(clientOrigin)), nil
}

func logError(err error, correlation, msg string) error {
	if correlation != "" {
		log.Error().Str("correlation_id", correlation).Err(err).Msg(msg)
	} else {
		log.Error().Err(err).Msg(msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
