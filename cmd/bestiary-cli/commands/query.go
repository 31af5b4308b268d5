package commands

import (
	"encoding/json"
	"strings"

	"bestiary-backend/lib/scrapers/bestiary"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var queryJson bool

func init() {
	queryCmd.Flags().BoolVar(&queryJson, "json", false, "Print the record as json instead of a table.")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <name...>",
	Short: "Prints the statistics of a monster.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		record, err := client.GetMonster(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if queryJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(record)
		}

		renderRecord(cmd, record)
		return nil
	},
}

func renderRecord(cmd *cobra.Command, record bestiary.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetTitle("%s", record.Name)
	t.AppendRows([]table.Row{
		{"Armor Class", record.ArmorClass},
		{"Hit Dice", record.HitDice},
		{"No. of Attacks", record.NumberOfAttacks},
		{"Damage", record.Damage},
		{"Movement", record.Movement},
		{"No. Appearing", record.NumberOfAppearing},
		{"Save As", record.SaveAs},
		{"Morale", record.Morale},
		{"Treasure Type", record.TreasureType},
		{"XP", record.XP},
	})
	t.AppendFooter(table.Row{"", record.Description})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
