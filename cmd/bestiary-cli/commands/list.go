package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints every monster linked from the bestiary index.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		entries, err := client.ListMonsters(cmd.Context())
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Name", "Path"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Name, e.Path})
		}
		t.AppendFooter(table.Row{"Total", len(entries)})

		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
