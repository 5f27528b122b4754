package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/export"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/menu"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/session"
)

var menuSheet string

var menuCmd = &cobra.Command{
	Use:   "menu [file]",
	Short: "Interactive statistics menu",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		user := os.Getenv("USER")
		if user == "" {
			user = "local"
		}
		m := menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), session.NewLocal(user), menu.Options{
			DefaultAlpha: c.DefaultAlpha,
			SampleRows:   c.SampleRows,
			Exporter:     export.New(c.ExportDir),
		})
		if len(args) == 1 {
			if err := m.LoadFile(args[0], menuSheet); err != nil {
				return err
			}
		}
		return m.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().StringVar(&menuSheet, "sheet-name", "", "XLSX: sheet to load with [file]")
}
