package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/familyhub/internal/mission"
	"github.com/abhisek/familyhub/internal/store"
)

func newMissionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "mission",
		Short: "Create, assign and manage missions",
	}
	c.AddCommand(
		newMissionCreateCmd(),
		&cobra.Command{
			Use:   "seed",
			Short: "Create the built-in missions and any from the config file",
			Args:  cobra.NoArgs,
			RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
				defs := append(mission.Seeds(), e.cfg.Missions...)
				created, err := e.engine.Seed(cmd.Context(), defs)
				if err != nil {
					return err
				}
				if len(created) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "All missions already exist.")
					return nil
				}
				for _, m := range created {
					fmt.Fprintf(cmd.OutOrStdout(), "Created mission %d: %s\n", m.ID, m.Title)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List missions",
			Args:  cobra.NoArgs,
			RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
				ms, err := e.engine.Missions(cmd.Context())
				if err != nil {
					return err
				}
				if len(ms) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No missions. Run `familyhub mission seed` to add the built-in ones.")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tCASH\tXP\tICON")
				for _, m := range ms {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n", m.ID, m.Title, m.Type, m.RewardCash, m.RewardXP, m.RewardIcon)
				}
				return tw.Flush()
			}),
		},
		&cobra.Command{
			Use:   "assign <mission-id> <user>",
			Short: "Assign a mission to a user",
			Args:  cobra.ExactArgs(2),
			RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				a, err := e.engine.Assign(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Assignment %d: mission %d for %s (%s)\n", a.ID, a.MissionID, a.UserID, a.State)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "assignments <user>",
			Short: "List a user's assignments",
			Args:  cobra.ExactArgs(1),
			RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				as, err := e.engine.Assignments(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printAssignments(cmd, as)
			}),
		},
		assignmentOp("start", "Start an assigned mission", func(cmd *cobra.Command, e *env, id int64) error {
			a, err := e.engine.Start(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assignment %d started, now %s.\n", a.ID, a.State)
			return nil
		}),
		assignmentOp("approve", "Approve a mission waiting for a parent", func(cmd *cobra.Command, e *env, id int64) error {
			a, grant, err := e.engine.Approve(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assignment %d approved, now %s.\n", a.ID, a.State)
			if grant != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Granted $%d and %d XP to %s.\n", grant.Cash, grant.XP, grant.UserID)
			}
			return nil
		}),
		assignmentOp("reject", "Send a mission waiting for a parent back to training", func(cmd *cobra.Command, e *env, id int64) error {
			a, err := e.engine.Reject(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assignment %d rejected, now %s.\n", a.ID, a.State)
			return nil
		}),
		&cobra.Command{
			Use:   "notifications <user>",
			Short: "List assignments the user has not been notified about",
			Args:  cobra.ExactArgs(1),
			RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				as, err := e.engine.Notifications(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(as) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No new notifications.")
					return nil
				}
				return printAssignments(cmd, as)
			}),
		},
		assignmentOp("dismiss", "Mark a completion notification as seen", func(cmd *cobra.Command, e *env, id int64) error {
			if err := e.engine.Dismiss(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Notification for assignment %d dismissed.\n", id)
			return nil
		}),
	)
	return c
}

func newMissionCreateCmd() *cobra.Command {
	var (
		d     mission.Definition
		piece string
	)
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a mission",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			if piece != "" {
				d.Config = map[string]any{"piece_name": piece}
			}
			m, err := e.engine.CreateMission(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created mission %d: %s\n", m.ID, m.Title)
			return nil
		}),
	}
	f := c.Flags()
	f.StringVar(&d.Title, "title", "", "Mission title")
	f.StringVar(&d.Description, "description", "", "Mission description")
	f.StringVar(&d.Type, "type", mission.TypeMultiplication, "Mission type ("+strings.Join(mission.DefaultRegistry().Types(), ", ")+")")
	f.IntVar(&d.RewardCash, "cash", 0, "Cash reward")
	f.IntVar(&d.RewardXP, "xp", mission.DefaultRewardXP, "XP reward")
	f.StringVar(&d.RewardIcon, "icon", "", "Icon unlocked on completion")
	f.StringVar(&d.RewardDescription, "reward-description", "", "Ledger description for the cash reward")
	f.StringVar(&d.GemType, "gem-type", "", "Gem awarded (ruby, emerald, diamond, sapphire, amethyst, topaz)")
	f.StringVar(&d.GemSize, "gem-size", "", "Gem size (small, medium, large)")
	f.StringVar(&piece, "piece", "", "Piece to perform (piano missions)")
	_ = c.MarkFlagRequired("title")
	return c
}

// assignmentOp is a command taking a single assignment ID.
func assignmentOp(use, short string, fn func(cmd *cobra.Command, e *env, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <assignment-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return fn(cmd, e, id)
		}),
	}
}

func printAssignments(cmd *cobra.Command, as []store.Assignment) error {
	if len(as) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No assignments.")
		return nil
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMISSION\tUSER\tSTATE\tLEVEL\tASSIGNED")
	for _, a := range as {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%d\t%s\n",
			a.ID, a.MissionID, a.UserID, a.State, a.CurrentLevel, a.AssignedAt.Local().Format("2006-01-02"))
	}
	return tw.Flush()
}
