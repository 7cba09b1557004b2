package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/zhenghao/billsnap/internal/bank"
	"github.com/zhenghao/billsnap/internal/cli"
	"github.com/zhenghao/billsnap/internal/model"
	"github.com/zhenghao/billsnap/internal/receipt"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse transaction text into structured records",
	}

	cmd.AddCommand(parseSmsCmd())
	cmd.AddCommand(parseReceiptCmd())

	return cmd
}

func parseSmsCmd() *cobra.Command {
	var sender string
	var file string
	var classify bool
	var external bool

	cmd := &cobra.Command{
		Use:   "sms [text]",
		Short: "Parse a bank notification message",
		Long: `Parse a bank notification message into a structured transaction.
Messages without an extractable amount (verification codes, balance
updates) are rejected. Use --file to parse one message per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return parseSmsFile(cmd, file, sender)
			}
			if len(args) == 0 {
				return fmt.Errorf("provide message text or --file")
			}

			text := strings.Join(args, " ")
			msg, ok := bank.ParseFrom(sender, text)
			if !ok {
				cmd.Println(cli.WarningStyle.Render("Not a transaction notification; nothing extracted."))
				return nil
			}

			printBankMessage(cmd, msg)

			if classify && msg.Merchant != "" {
				return classifyAndPrint(cmd, msg.Merchant, external)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "SMS sender short-code (e.g. 95588)")
	cmd.Flags().StringVar(&file, "file", "", "parse one message per line from a file")
	cmd.Flags().BoolVar(&classify, "classify", false, "classify the extracted merchant")
	cmd.Flags().BoolVar(&external, "external", false, "allow the external classifier fallback")

	return cmd
}

func parseReceiptCmd() *cobra.Command {
	var file string
	var classify bool
	var external bool

	cmd := &cobra.Command{
		Use:   "receipt [text]",
		Short: "Parse payment-screenshot OCR text",
		Long: `Parse OCR text from a payment confirmation screen. Extraction is
best-effort: a record is always produced, and the confidence score says
how much of it was found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				text, err := os.ReadFile(file) // #nosec G304 -- user-supplied path is the point
				if err != nil {
					return fmt.Errorf("failed to read OCR text: %w", err)
				}
				args = []string{string(text)}
			}
			if len(args) == 0 {
				return fmt.Errorf("provide OCR text or --file")
			}

			r := receipt.Parse(strings.Join(args, " "))
			printReceipt(cmd, r)

			if classify && r.Merchant != "" {
				return classifyAndPrint(cmd, r.Merchant, external)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read OCR text from a file")
	cmd.Flags().BoolVar(&classify, "classify", false, "classify the extracted merchant")
	cmd.Flags().BoolVar(&external, "external", false, "allow the external classifier fallback")

	return cmd
}

// parseSmsFile parses one message per line, reporting progress and a summary.
func parseSmsFile(cmd *cobra.Command, path, sender string) error {
	f, err := os.Open(path) // #nosec G304 -- user-supplied path is the point
	if err != nil {
		return fmt.Errorf("failed to open message file: %w", err)
	}
	defer func() { _ = f.Close() }()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Parsing messages..."),
	)

	var parsed, rejected int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		_ = bar.Add(1)
		if line == "" {
			continue
		}
		if msg, ok := bank.ParseFrom(sender, line); ok {
			parsed++
			cmd.Println()
			printBankMessage(cmd, msg)
		} else {
			rejected++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read message file: %w", err)
	}
	_ = bar.Finish()

	cmd.Println()
	cmd.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d parsed, %d rejected", parsed, rejected)))
	return nil
}

func printBankMessage(cmd *cobra.Command, msg *model.BankMessage) {
	cmd.Println(cli.TitleStyle.Render("Bank transaction"))
	cmd.Println(cli.Field("Amount", msg.Amount.StringFixed(2)+" CNY"))
	cmd.Println(cli.Field("Direction", directionLabel(msg.IsExpense)))
	if msg.Merchant != "" {
		cmd.Println(cli.Field("Merchant", msg.Merchant))
	}
	if msg.BankName != "" {
		cmd.Println(cli.Field("Bank", msg.BankName))
	}
	if msg.CardSuffix != "" {
		cmd.Println(cli.Field("Card", "****"+msg.CardSuffix))
	}
}

func printReceipt(cmd *cobra.Command, r model.Receipt) {
	cmd.Println(cli.TitleStyle.Render("Receipt"))
	if r.HasAmount {
		cmd.Println(cli.Field("Amount", r.Amount.StringFixed(2)+" CNY"))
	} else {
		cmd.Println(cli.Field("Amount", cli.SubtleStyle.Render("(not found)")))
	}
	if r.Merchant != "" {
		cmd.Println(cli.Field("Merchant", r.Merchant))
	}
	cmd.Println(cli.Field("Direction", string(r.Direction)))
	cmd.Println(cli.Field("Platform", string(r.Platform)))
	cmd.Println(cli.Field("Confidence", fmt.Sprintf("%.1f", r.Confidence)))
}

func directionLabel(isExpense bool) string {
	if isExpense {
		return "expense"
	}
	return "income"
}
