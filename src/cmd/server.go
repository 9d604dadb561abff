package cmd

import (
	"github.com/decentraland/thirdparty-registry/src/gateway"
	"github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serves the registry API and publishes registry events",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := gateway.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		select {
		case <-controller.CtxRunning.Done():
		case <-applicationCtx.Done():
		}

		controller.StopWait()

		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("root-cmd")
		log.Debug("Finished server command")
		return
	},
}
