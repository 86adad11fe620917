package main

import (
	"github.com/spf13/cobra"

	"github.com/fourchimps/crudgen/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crudgen",
		Short: "crudgen - CRUD generator for ent schemas",
		Long: `crudgen generates CRUD controllers, views, routing and form types
from the entities of an ent schema package.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.GenerateCmd())

	cli.Exit(rootCmd.Execute())
}
