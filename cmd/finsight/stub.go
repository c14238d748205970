package main

import (
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/config"
	"github.com/Veraticus/finsight/internal/stubserver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func stubServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Run a local analysis endpoint for development",
		Long: `Serve POST /api/analyze locally. The stub checks the CSV header, classifies
risk from the volatility of daily close-to-close returns and answers with the
same JSON shape as the real service.

Point the client at it with --api-url or FINSIGHT_API_BASE_URL.`,
		Args: cobra.NoArgs,
		RunE: runStubServer,
	}

	cmd.Flags().String("addr", ":5000", "listen address")
	_ = viper.BindPFlag(config.KeyStubAddr, cmd.Flags().Lookup("addr"))

	return cmd
}

func runStubServer(cmd *cobra.Command, _ []string) error {
	addr := viper.GetString(config.KeyStubAddr)
	common.LogInfo("Starting stub analysis server", common.Fields{"addr": addr})
	return stubserver.New().ListenAndServe(cmd.Context(), addr)
}
