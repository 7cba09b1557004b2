package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhenghao/billsnap/internal/cli"
	"github.com/zhenghao/billsnap/internal/model"
)

func correctionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corrections",
		Short: "Manage remembered merchant categories",
		Long: `View and manage the correction cache: merchant categories confirmed
by you or remembered from external classifications.`,
	}

	cmd.AddCommand(correctionsListCmd())
	cmd.AddCommand(correctionsSetCmd())
	cmd.AddCommand(correctionsDeleteCmd())
	cmd.AddCommand(correctionsClearCmd())

	return cmd
}

func correctionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all remembered corrections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, store, err := initEngine(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			corrections, err := eng.Corrections(ctx)
			if err != nil {
				return err
			}
			if len(corrections) == 0 {
				cmd.Println(cli.SubtleStyle.Render("No corrections yet."))
				return nil
			}

			cmd.Println(cli.TitleStyle.Render("Corrections"))
			for _, c := range corrections {
				cmd.Printf("%-30s %-14s %s\n",
					c.Merchant,
					c.Category,
					cli.SubtleStyle.Render(string(c.Source)))
			}
			return nil
		},
	}
}

func correctionsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <merchant> <category>",
		Short: "Remember a category for a merchant",
		Long:  `Remember a category for a merchant, overwriting any previous entry.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := model.ParseCategory(args[1])
			if err != nil {
				return fmt.Errorf("%w (valid: %v)", err, model.Categories())
			}

			ctx := cmd.Context()
			eng, store, err := initEngine(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.CacheCorrection(ctx, args[0], category); err != nil {
				return err
			}
			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Remembered %s → %s", args[0], category)))
			return nil
		},
	}
}

func correctionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <merchant>",
		Short: "Forget the correction for one merchant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, store, err := initEngine(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.DeleteCorrection(ctx, args[0]); err != nil {
				return err
			}
			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Forgot %s", args[0])))
			return nil
		},
	}
}

func correctionsClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every remembered correction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear all corrections without --yes")
			}

			ctx := cmd.Context()
			eng, store, err := initEngine(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.ClearCache(ctx); err != nil {
				return err
			}
			cmd.Println(cli.SuccessStyle.Render("All corrections cleared."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing everything")

	return cmd
}
