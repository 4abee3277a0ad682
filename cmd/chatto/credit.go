package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chattolabs/chatto/internal/api"
)

var creditPurchases bool

func init() {
	rootCmd.AddCommand(creditCmd)
	creditCmd.AddCommand(creditBalanceCmd)
	creditCmd.AddCommand(creditBuyCmd)
	creditCmd.AddCommand(creditHistoryCmd)

	creditHistoryCmd.Flags().BoolVar(&creditPurchases, "purchases", false, "show purchase history instead of usage")
}

var creditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Check and top up analysis credits",
}

var creditBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current credit balance",
	RunE:  runCreditBalance,
}

var creditBuyCmd = &cobra.Command{
	Use:   "buy <amount>",
	Short: "Purchase analysis credits",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreditBuy,
}

var creditHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show credit usage or purchase history",
	RunE:  runCreditHistory,
}

func runCreditBalance(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	client, err := state.requireAuth(ctx)
	if err != nil {
		return err
	}
	profile, err := client.GetProfile(ctx)
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(profile)
	}
	fmt.Printf("credit %d, point %d\n", profile.Credit, profile.Point)
	return nil
}

func runCreditBuy(cmd *cobra.Command, args []string) error {
	amount, err := strconv.Atoi(args[0])
	if err != nil || amount <= 0 {
		return fmt.Errorf("amount must be a positive number, got %q", args[0])
	}

	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	client, err := state.requireAuth(ctx)
	if err != nil {
		return err
	}
	profile, err := client.PurchaseCredit(ctx, amount)
	if err != nil {
		return err
	}
	fmt.Printf("purchased %d credits, balance is now %d\n", amount, profile.Credit)
	return nil
}

func runCreditHistory(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	client, err := state.requireAuth(ctx)
	if err != nil {
		return err
	}

	var events []api.CreditEvent
	if creditPurchases {
		events, err = client.CreditPurchaseHistory(ctx)
	} else {
		events, err = client.CreditUsageHistory(ctx)
	}
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(events)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tAMOUNT\tDETAIL")
	for _, event := range events {
		fmt.Fprintf(w, "%s\t%+d\t%s\n", event.CreatedAt.Format("2006-01-02 15:04"), event.Amount, event.Detail)
	}
	return w.Flush()
}
