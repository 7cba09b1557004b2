package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhenghao/billsnap/internal/cli"
	"github.com/zhenghao/billsnap/internal/model"
)

func classifyCmd() *cobra.Command {
	var external bool

	cmd := &cobra.Command{
		Use:   "classify <merchant>",
		Short: "Classify a merchant into a spending category",
		Long: `Classify a merchant string. Remembered corrections win over keyword
rules; with --external an unmatched merchant is sent to the configured
model provider and the answer is remembered for next time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return classifyAndPrint(cmd, args[0], external)
		},
	}

	cmd.Flags().BoolVar(&external, "external", false, "allow the external classifier fallback")

	return cmd
}

func classifyAndPrint(cmd *cobra.Command, merchant string, external bool) error {
	ctx := cmd.Context()

	eng, store, err := initEngine(ctx, external)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result := eng.Classify(ctx, merchant, external)
	printClassification(cmd, merchant, result)
	return nil
}

func printClassification(cmd *cobra.Command, merchant string, result model.ClassificationResult) {
	cmd.Println(cli.TitleStyle.Render("Classification"))
	cmd.Println(cli.Field("Merchant", merchant))
	cmd.Println(cli.Field("Category", string(result.Category)))
	cmd.Println(cli.Field("Source", string(result.Source)))
	cmd.Println(cli.Field("Confidence", fmt.Sprintf("%.1f", result.Confidence)))
}
