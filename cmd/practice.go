package cmd

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/familyhub/internal/facts"
	"github.com/abhisek/familyhub/internal/mission"
	"github.com/abhisek/familyhub/internal/ui/drill"
)

func newTrainCmd() *cobra.Command {
	var (
		sessionOnly bool
		submitPath  string
	)
	c := &cobra.Command{
		Use:   "train <assignment-id>",
		Short: "Run a training session",
		Long: "Run a training session in the terminal. With --session the drawn questions are printed as JSON instead; " +
			"with --submit a finished session is read as JSON (\"-\" for stdin) and recorded.",
		Args: cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if submitPath != "" {
				var sub mission.TrainingSubmission
				if err := readJSON(cmd, submitPath, &sub); err != nil {
					return err
				}
				res, err := e.engine.SubmitTraining(ctx, id, sub)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}

			sess, err := e.engine.TrainingSession(ctx, id)
			if err != nil {
				return err
			}
			if sessionOnly {
				return printJSON(cmd.OutOrStdout(), sess)
			}

			out := cmd.OutOrStdout()
			if len(sess.Questions) == 0 {
				// Missions without drill content just log the practice.
				if sess.Message != "" {
					fmt.Fprintln(out, sess.Message)
				}
				res, err := e.engine.SubmitTraining(ctx, id, mission.TrainingSubmission{})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, orDefault(res.Message, "Practice logged."))
				return nil
			}

			fmt.Fprintf(out, "Mastered %d, practising %d, new %d of %d facts.\n",
				sess.MasteredCount, sess.WeakCount, sess.UnseenCount, facts.UniverseSize)

			problems := make([]drill.Problem, len(sess.Questions))
			for i, q := range sess.Questions {
				problems[i] = drill.Problem{A: q.A, B: q.B}
			}
			res, err := drill.Run(ctx, drill.Config{
				Mode:     drill.Training,
				Title:    "Training",
				Problems: problems,
				Hint:     func(a, b int) string { return e.engine.Mnemonic(ctx, a, b) },
			})
			if err != nil {
				return err
			}
			if res.Aborted {
				fmt.Fprintln(out, "Training stopped early, nothing was recorded.")
				return nil
			}

			sub := mission.TrainingSubmission{DurationSeconds: seconds(res.Elapsed)}
			for i, p := range problems {
				ua := res.Answers[i]
				sub.Questions = append(sub.Questions, mission.TrainingAnswer{
					A: p.A, B: p.B, UserAnswer: ua, Correct: ua != nil && *ua == p.A*p.B,
				})
			}
			result, err := e.engine.SubmitTraining(ctx, id, sub)
			if err != nil {
				return err
			}
			printTrainingResult(out, result)
			return nil
		}),
	}
	c.Flags().BoolVar(&sessionOnly, "session", false, "Print the training questions as JSON and exit")
	c.Flags().StringVar(&submitPath, "submit", "", "Record a training submission from a JSON file")
	c.MarkFlagsMutuallyExclusive("session", "submit")
	return c
}

func newTestCmd() *cobra.Command {
	var (
		level       int
		sessionOnly bool
		submitPath  string
	)
	c := &cobra.Command{
		Use:   "test <assignment-id>",
		Short: "Take a certification test",
		Long: "Take the next certification test (or --level N) in the terminal. With --session the test is printed as JSON; " +
			"with --submit a finished test is read as JSON (\"-\" for stdin) and graded.",
		Args: cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if submitPath != "" {
				var sub mission.TestSubmission
				if err := readJSON(cmd, submitPath, &sub); err != nil {
					return err
				}
				res, err := e.engine.SubmitTest(ctx, id, sub)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}

			ts, err := e.engine.Test(ctx, id, level)
			if err != nil {
				return err
			}
			if sessionOnly {
				return printJSON(cmd.OutOrStdout(), ts)
			}

			out := cmd.OutOrStdout()
			sub := mission.TestSubmission{Level: ts.Level, Questions: ts.Questions, PieceName: ts.PieceName}
			if len(ts.Questions) > 0 {
				var limit time.Duration
				if ts.TimeLimit != nil {
					limit = time.Duration(*ts.TimeLimit) * time.Second
					fmt.Fprintf(out, "%s: %d questions in %d seconds. All must be right.\n", ts.Label, ts.Total, *ts.TimeLimit)
				} else {
					fmt.Fprintf(out, "%s: %d questions, no time limit. All must be right.\n", ts.Label, ts.Total)
				}

				problems := make([]drill.Problem, len(ts.Questions))
				for i, q := range ts.Questions {
					problems[i] = drill.Problem{A: q.A, B: q.B}
				}
				res, err := drill.Run(ctx, drill.Config{
					Mode:      drill.Test,
					Title:     ts.Label,
					Problems:  problems,
					TimeLimit: limit,
				})
				if err != nil {
					return err
				}
				if res.Aborted {
					fmt.Fprintln(out, "Test abandoned, nothing was recorded.")
					return nil
				}
				sub.Answers = res.Answered()
				sub.DurationSeconds = seconds(res.Elapsed)
			} else if ts.Message != "" {
				fmt.Fprintln(out, ts.Message)
			}

			result, err := e.engine.SubmitTest(ctx, id, sub)
			if err != nil {
				return err
			}
			printTestResult(out, result)
			return nil
		}),
	}
	c.Flags().IntVar(&level, "level", 0, "Test level to take (default: the next one)")
	c.Flags().BoolVar(&sessionOnly, "session", false, "Print the test as JSON and exit")
	c.Flags().StringVar(&submitPath, "submit", "", "Grade a test submission from a JSON file")
	c.MarkFlagsMutuallyExclusive("session", "submit")
	return c
}

func newSummaryCmd() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "summary <assignment-id>",
		Short: "Show progress on an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := e.engine.Summary(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "State:             %s\n", s.State)
			if s.PieceName != "" {
				fmt.Fprintf(out, "Piece:             %s\n", s.PieceName)
				fmt.Fprintf(out, "Practice sessions: %d\n", s.TrainingSessions)
				fmt.Fprintf(out, "Submitted:         %v\n", s.Submitted)
				return nil
			}
			fmt.Fprintf(out, "Facts:             %d mastered, %d weak, %d unseen of %d\n",
				s.MasteredCount, s.WeakCount, s.UnseenCount, s.TotalFacts)
			fmt.Fprintf(out, "Training sessions: %d\n", s.TrainingSessions)
			fmt.Fprintf(out, "Test attempts:     %d\n", s.TestAttempts)
			fmt.Fprintf(out, "Current level:     %d of 3\n", s.CurrentLevel)
			fmt.Fprintf(out, "Recent accuracy:   %.1f%%\n", s.RecentAccuracy)
			return nil
		}),
	}
	c.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return c
}

func printTrainingResult(w io.Writer, r *mission.TrainingResult) {
	fmt.Fprintf(w, "%d of %d correct (%.1f%%).\n", r.Correct, r.Total, r.ScorePct)
	fmt.Fprintf(w, "Mastered %d, weak %d, unseen %d of %d facts.\n",
		r.MasteredCount, r.WeakCount, r.UnseenCount, r.TotalFacts)
}

func printTestResult(w io.Writer, r *mission.TestResult) {
	switch {
	case r.PendingApproval:
		fmt.Fprintln(w, orDefault(r.Message, "Submitted. Waiting for a parent to approve."))
		return
	case r.Passed:
		fmt.Fprintf(w, "Passed level %d! %d of %d correct.\n", r.Level, r.Correct, r.Total)
	default:
		fmt.Fprintf(w, "Not yet: %s.\n", r.Reason)
	}
	if r.Completed {
		fmt.Fprintln(w, "Mission complete!")
	}
	if r.Reward != nil {
		fmt.Fprintf(w, "Reward: $%d and %d XP.\n", r.Reward.Cash, r.Reward.XP)
	}
}

// seconds rounds up so a time limit never gains a partial second.
func seconds(d time.Duration) *int {
	s := int(math.Ceil(d.Seconds()))
	return &s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
