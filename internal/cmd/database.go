package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/authway/adminctl/internal/tui"
)

var dbCmd = &cobra.Command{
	Use:     "db",
	Aliases: []string{"database"},
	Short:   "Inspect the platform database (read-only)",
	Long: `Inspect the platform database. All access is read-only; the backend
rejects anything but SELECT statements.

Examples:
  adminctl db tables
  adminctl db browse
  adminctl db query "SELECT count(*) FROM users"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var dbTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables with row and column counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		tables, err := a.client.Tables(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TABLE\tCOLUMNS\tROWS")
		for _, t := range tables {
			fmt.Fprintf(w, "%s\t%d\t%d\n", t.Name, t.Columns, t.Rows)
		}
		return w.Flush()
	},
}

var dbBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse tables interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		program := tea.NewProgram(tui.NewBrowserModel(a.client))
		_, err = program.Run()
		return err
	},
}

var dbDataCmd = &cobra.Command{
	Use:   "data <table>",
	Short: "Print a page of a table's rows",
	Long: `Print one page of a table's rows, for scripting. Use 'db browse' for
interactive paging.

Examples:
  adminctl db data users
  adminctl db data users --limit 10 --offset 20 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		data, err := a.client.TableData(cmd.Context(), args[0], limit, offset)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(data)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		header := ""
		for i, col := range data.Columns {
			if i > 0 {
				header += "\t"
			}
			header += col
		}
		fmt.Fprintln(w, header)
		for _, row := range data.Rows {
			line := ""
			for i, cell := range row {
				if i > 0 {
					line += "\t"
				}
				line += fmt.Sprintf("%v", cell)
			}
			fmt.Fprintln(w, line)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("(rows %d-%d of %d)\n", data.Offset+1, data.Offset+len(data.Rows), data.TotalCount)
		return nil
	},
}

var dbQueryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a read-only SQL query",
	Long: `Run a SELECT query against the platform database and print the result.

Examples:
  adminctl db query "SELECT email, role FROM users LIMIT 10"
  adminctl db query --json "SELECT count(*) AS total FROM users"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		result, err := a.client.Query(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			out := make([]map[string]any, 0, len(result.Rows))
			for _, row := range result.Rows {
				record := make(map[string]any, len(result.Columns))
				for i, col := range result.Columns {
					if i < len(row) {
						record[col] = row[i]
					}
				}
				out = append(out, record)
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		header := ""
		for i, col := range result.Columns {
			if i > 0 {
				header += "\t"
			}
			header += col
		}
		fmt.Fprintln(w, header)
		for _, row := range result.Rows {
			line := ""
			for i, cell := range row {
				if i > 0 {
					line += "\t"
				}
				line += fmt.Sprintf("%v", cell)
			}
			fmt.Fprintln(w, line)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("(%d rows)\n", result.RowCount)
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbTablesCmd)
	dbCmd.AddCommand(dbBrowseCmd)
	dbCmd.AddCommand(dbDataCmd)
	dbCmd.AddCommand(dbQueryCmd)

	dbDataCmd.Flags().Int("limit", 50, "rows per page")
	dbDataCmd.Flags().Int("offset", 0, "first row to return")
	dbDataCmd.Flags().Bool("json", false, "output the page as JSON")
	dbQueryCmd.Flags().Bool("json", false, "output rows as JSON objects")

	rootCmd.AddCommand(dbCmd)
}
