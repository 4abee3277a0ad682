package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/quiz"
)

var (
	qzTitle   string
	qzOptions []string
	qzAnswer  int
	qzYes     bool
	qzAll     bool
	qzName    string
	qzAnswers string
)

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizAddCmd)
	quizCmd.AddCommand(quizEditCmd)
	quizCmd.AddCommand(quizDeleteCmd)
	quizCmd.AddCommand(quizTakeCmd)

	for _, c := range []*cobra.Command{quizAddCmd, quizEditCmd} {
		c.Flags().StringVar(&qzTitle, "title", "", "Question text (required)")
		c.Flags().StringArrayVar(&qzOptions, "option", nil, "Answer option, repeat exactly four times")
		c.Flags().IntVar(&qzAnswer, "answer", 0, "1-based index of the correct option (required)")
		_ = c.MarkFlagRequired("title")
		_ = c.MarkFlagRequired("answer")
	}
	quizEditCmd.Flags().BoolVar(&qzYes, "yes", false, "skip the participant-record warning")
	quizDeleteCmd.Flags().BoolVar(&qzYes, "yes", false, "skip the participant-record warning")
	quizDeleteCmd.Flags().BoolVar(&qzAll, "all", false, "delete every question of the quiz")

	quizTakeCmd.Flags().StringVar(&qzName, "name", "", "Participant display name (required)")
	quizTakeCmd.Flags().StringVar(&qzAnswers, "answers", "", "Comma-separated choices, one per question (required)")
	_ = quizTakeCmd.MarkFlagRequired("name")
	_ = quizTakeCmd.MarkFlagRequired("answers")
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Manage the quiz attached to an analysis result",
}

var quizListCmd = &cobra.Command{
	Use:   "ls <kind> <analysis-id>",
	Short: "List quiz questions",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuizList,
}

var quizAddCmd = &cobra.Command{
	Use:   "add <kind> <analysis-id>",
	Short: "Add a quiz question",
	Long: `Add a quiz question with four options.

Examples:
  chatto quiz add chemi 42 --title "누가 제일 말이 많을까?" \
    --option 철수 --option 영희 --option 민수 --option 지영 --answer 2`,
	Args: cobra.ExactArgs(2),
	RunE: runQuizAdd,
}

var quizEditCmd = &cobra.Command{
	Use:   "edit <kind> <analysis-id> <question-id>",
	Short: "Replace a quiz question",
	Long: `Replace a quiz question. Editing wipes the answers participants
already submitted for it, so the command asks first unless --yes is given.`,
	Args: cobra.ExactArgs(3),
	RunE: runQuizEdit,
}

var quizDeleteCmd = &cobra.Command{
	Use:   "rm <kind> <analysis-id> [question-id]",
	Short: "Delete one question, or all of them with --all",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runQuizDelete,
}

var quizTakeCmd = &cobra.Command{
	Use:   "take <share-uuid>",
	Short: "Take a shared quiz as a guest",
	Long: `Take a shared quiz as a guest. No login needed; answers are given
up front as a comma-separated list matching the question order.

Examples:
  chatto quiz take 3f1c... --name 민수 --answers 2,4,1`,
	Args: cobra.ExactArgs(1),
	RunE: runQuizTake,
}

// confirm prints the warning and reads a y/N answer from stdin.
func confirm(warning string) bool {
	fmt.Printf("%s [y/N] ", warning)
	var line string
	_, _ = fmt.Scanln(&line)
	return strings.EqualFold(line, "y")
}

func questionInput() (api.QuestionInput, error) {
	in := api.QuestionInput{Title: qzTitle, Answer: qzAnswer}
	if len(qzOptions) != 4 {
		return in, fmt.Errorf("need exactly four --option flags, got %d", len(qzOptions))
	}
	copy(in.Options[:], qzOptions)
	return in, in.Validate()
}

func runQuizList(cmd *cobra.Command, args []string) error {
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
	questions, err := client.ListQuestions(ctx, kind, args[1])
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(questions)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t#\tQUESTION\tANSWER")
	for _, q := range questions {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d. %s\n", q.ID, q.Index, q.Title, q.Answer, q.Options[q.Answer-1])
	}
	return w.Flush()
}

func runQuizAdd(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	in, err := questionInput()
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
	question, err := client.AddQuestion(ctx, kind, args[1], in)
	if err != nil {
		return err
	}
	fmt.Printf("added question %s (#%d)\n", question.ID, question.Index)
	return nil
}

func runQuizEdit(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	in, err := questionInput()
	if err != nil {
		return err
	}
	if !qzYes && !confirm(quiz.EditWarning) {
		return nil
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
	if err := client.UpdateQuestion(ctx, kind, args[1], args[2], in); err != nil {
		return err
	}
	fmt.Printf("updated question %s\n", args[2])
	return nil
}

func runQuizDelete(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	if qzAll == (len(args) == 3) {
		return fmt.Errorf("pass either a question-id or --all")
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
	if qzAll {
		if !qzYes && !confirm(quiz.DeleteAllWarning) {
			return nil
		}
		if err := client.DeleteAllQuestions(ctx, kind, args[1]); err != nil {
			return err
		}
		fmt.Println("deleted all questions")
		return nil
	}
	if err := client.DeleteQuestion(ctx, kind, args[1], args[2]); err != nil {
		return err
	}
	fmt.Printf("deleted question %s\n", args[2])
	return nil
}

func runQuizTake(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	// Guests answer through the public client against the share UUID.
	guest := quiz.NewGuestSession(state.mgr.Public(), args[0])
	if err := guest.Start(ctx, qzName); err != nil {
		return err
	}

	questions := guest.Questions()
	choices := strings.Split(qzAnswers, ",")
	if len(choices) != len(questions) {
		return fmt.Errorf("quiz has %d questions but %d answers were given", len(questions), len(choices))
	}
	for i, question := range questions {
		choice, err := strconv.Atoi(strings.TrimSpace(choices[i]))
		if err != nil {
			return fmt.Errorf("answer %d: %w", i+1, err)
		}
		if err := guest.Answer(ctx, question.ID, choice); err != nil {
			return fmt.Errorf("question %d: %w", question.Index, err)
		}
	}

	result, err := guest.Result(ctx)
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(result)
	}
	fmt.Printf("%s: %d/%d\n", result.Name, result.Score, result.Total)
	return nil
}
