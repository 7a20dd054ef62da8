package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/authway/adminctl/internal/apidocs"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List the backend API endpoints",
	Long: `List the backend's documented API endpoints from its OpenAPI
description. A copy of the document ships with adminctl; pass --file to
document a backend newer than this build.

Examples:
  adminctl docs
  adminctl docs --tag users
  adminctl docs --file ./openapi.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		tagFilter, _ := cmd.Flags().GetString("tag")

		var catalog *apidocs.Catalog
		var err error
		if file != "" {
			catalog, err = apidocs.LoadFile(file)
		} else {
			catalog, err = apidocs.Load()
		}
		if err != nil {
			return err
		}

		fmt.Println(catalog.Title())
		fmt.Println()

		order, groups := catalog.ByTag()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		for _, tag := range order {
			if tagFilter != "" && tag != tagFilter {
				continue
			}
			fmt.Fprintf(w, "%s\t\t\n", tag)
			for _, op := range groups[tag] {
				auth := ""
				if op.RequiresAuth {
					auth = "auth"
				}
				fmt.Fprintf(w, "  %s %s\t%s\t%s\n", op.Method, op.Path, op.Summary, auth)
			}
		}
		return w.Flush()
	},
}

func init() {
	docsCmd.Flags().String("file", "", "load this OpenAPI file instead of the embedded one")
	docsCmd.Flags().String("tag", "", "only endpoints with this tag")

	rootCmd.AddCommand(docsCmd)
}
