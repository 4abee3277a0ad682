package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chattolabs/chatto/internal/analysis"
	"github.com/chattolabs/chatto/internal/api"
)

var (
	anRelation    string
	anSituation   string
	anAge         string
	anTeamType    string
	anProjectType string
	anDateFrom    string
	anDateTo      string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&anRelation, "relation", "", "Relationship between the participants")
	analyzeCmd.Flags().StringVar(&anSituation, "situation", "", "Situation of the conversation")
	analyzeCmd.Flags().StringVar(&anAge, "age", "", "Age band of the participants")
	analyzeCmd.Flags().StringVar(&anTeamType, "team-type", "", "Team type (contrib only)")
	analyzeCmd.Flags().StringVar(&anProjectType, "project-type", "", "Project type (contrib only)")
	analyzeCmd.Flags().StringVar(&anDateFrom, "from", "", "Analysis start date (e.g. 250101 or 25.01.01)")
	analyzeCmd.Flags().StringVar(&anDateTo, "to", "", "Analysis end date")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <kind> <chat-id>",
	Short: "Request a new analysis for an uploaded chat",
	Long: `Request a new analysis for an uploaded chat. Kind is one of chemi,
some, mbti (play mode) or contrib (business mode). Parameters left out stay
at their "not provided" defaults.

Examples:
  chatto analyze chemi 42 --relation 친구 --from 250101
  chatto analyze contrib 7 --mode business --team-type 개발팀`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

// buildParams assembles the request parameters from flags, normalizing the
// date inputs first.
func buildParams(kind api.Kind) (api.Params, error) {
	params := api.Params{
		Relation:    anRelation,
		Situation:   anSituation,
		Age:         anAge,
		TeamType:    anTeamType,
		ProjectType: anProjectType,
	}
	var err error
	if anDateFrom != "" {
		if params.DateFrom, err = analysis.NormalizeDate(anDateFrom); err != nil {
			return api.Params{}, fmt.Errorf("--from: %w", err)
		}
	}
	if anDateTo != "" {
		if params.DateTo, err = analysis.NormalizeDate(anDateTo); err != nil {
			return api.Params{}, fmt.Errorf("--to: %w", err)
		}
	}
	return analysis.Normalize(kind, params), nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	if api.ModeFor(kind) != state.mode {
		return fmt.Errorf("%s analyses need --mode %s", kind, api.ModeFor(kind))
	}

	params, err := buildParams(kind)
	if err != nil {
		return err
	}

	ctx, cancel := state.ctx()
	defer cancel()
	client, err := state.requireAuth(ctx)
	if err != nil {
		return err
	}
	result, err := client.RequestAnalysis(ctx, kind, args[1], params)
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(result)
	}
	fmt.Printf("analysis %s created for chat %q\n", result.ID, result.ChatTitle)
	fmt.Printf("view it with: chatto result show %s %s\n", kind, result.ID)
	return nil
}
