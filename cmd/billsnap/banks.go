package main

import (
	"github.com/spf13/cobra"

	"github.com/zhenghao/billsnap/internal/bank"
	"github.com/zhenghao/billsnap/internal/cli"
)

func banksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List known issuers and their sender short-codes",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(cli.TitleStyle.Render("Known issuers"))
			for _, b := range bank.All() {
				cmd.Printf("%-8s %-8s %s\n",
					b.ID,
					b.SenderCode,
					b.Name)
			}
		},
	}
}
