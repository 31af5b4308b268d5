package commands

import (
	"fmt"
	"strings"

	"bestiary-backend/lib/scrapers/bestiary"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "How many matches to print.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <term...>",
	Short: "Prints the monsters whose names are closest to the search term.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		entries, err := client.ListMonsters(cmd.Context())
		if err != nil {
			return err
		}

		suggestions := bestiary.Suggest(strings.Join(args, " "), entries, searchLimit)

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Name", "Path", "Similarity"})
		for _, s := range suggestions {
			t.AppendRow(table.Row{s.Entry.Name, s.Entry.Path, fmt.Sprintf("%.2f", s.Similarity)})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
