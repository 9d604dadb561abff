package cmd

import (
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies database migrations with the migration user",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		return model.Migrate(applicationCtx, conf)
	},
}
