package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chattolabs/chatto/internal/analysis"
	"github.com/chattolabs/chatto/internal/api"
)

func init() {
	rootCmd.AddCommand(resultCmd)
	resultCmd.AddCommand(resultListCmd)
	resultCmd.AddCommand(resultShowCmd)
	resultCmd.AddCommand(resultDeleteCmd)
	resultCmd.AddCommand(resultShareCmd)
	resultCmd.AddCommand(resultSharedCmd)
}

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Browse analysis results",
}

var resultListCmd = &cobra.Command{
	Use:   "ls <kind>",
	Short: "List analysis results of one kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultList,
}

var resultShowCmd = &cobra.Command{
	Use:   "show <kind> <analysis-id>",
	Short: "Show one analysis result",
	Args:  cobra.ExactArgs(2),
	RunE:  runResultShow,
}

var resultDeleteCmd = &cobra.Command{
	Use:   "rm <kind> <analysis-id>",
	Short: "Delete an analysis result",
	Args:  cobra.ExactArgs(2),
	RunE:  runResultDelete,
}

var resultShareCmd = &cobra.Command{
	Use:   "share <kind> <analysis-id>",
	Short: "Issue (or fetch) the share link for a result",
	Args:  cobra.ExactArgs(2),
	RunE:  runResultShare,
}

var resultSharedCmd = &cobra.Command{
	Use:   "shared <share-uuid>",
	Short: "Show a shared result without logging in",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultShared,
}

func runResultList(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
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
	items, err := client.ListAnalyses(ctx, kind)
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(items)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHAT\tCREATED")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.ChatTitle, item.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// printAnalysis renders a result for the terminal: the stored parameters
// followed by whatever report payload the backend computed.
func printAnalysis(result *api.Analysis) {
	fmt.Printf("%s  %s  (%s)\n", result.Kind, result.ChatTitle, result.CreatedAt.Format("2006-01-02 15:04"))
	for _, key := range analysis.Fields(result.Kind) {
		fmt.Printf("  %s: %s\n", analysis.Label(key), analysis.Get(result.Params, key))
	}
	for key, value := range result.Spec {
		fmt.Printf("  %s: %v\n", key, value)
	}
	if len(result.SpecPersonal) > 0 {
		fmt.Printf("  참여자별 항목 %d건\n", len(result.SpecPersonal))
	}
	if len(result.SpecPeriod) > 0 {
		fmt.Printf("  기간별 항목 %d건\n", len(result.SpecPeriod))
	}
	if len(result.SpecTable) > 0 {
		fmt.Printf("  표 항목 %d건\n", len(result.SpecTable))
	}
}

func runResultShow(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
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
	result, err := client.GetAnalysis(ctx, kind, args[1])
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(result)
	}
	printAnalysis(result)
	return nil
}

func runResultDelete(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
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
	if err := client.DeleteAnalysis(ctx, kind, args[1]); err != nil {
		return err
	}
	fmt.Printf("deleted %s analysis %s\n", kind, args[1])
	return nil
}

func runResultShare(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
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
	link, err := client.IssueShareLink(ctx, kind, args[1])
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(link)
	}
	fmt.Printf("%s/share/%s/\n", state.cfg.API.BaseURL, link.UUID)
	return nil
}

func runResultShared(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	// Shared results are public; no login needed.
	result, err := state.mgr.Public().GetSharedAnalysis(ctx, args[0])
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(result)
	}
	printAnalysis(result)
	return nil
}
