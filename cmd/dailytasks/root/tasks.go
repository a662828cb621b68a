package root

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"daily-tasks/internal/tracker"
	"daily-tasks/internal/ui"
)

func newTasksCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List today's habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *tracker.Category
			if category != "" {
				c, err := tracker.ParseCategory(category)
				if err != nil {
					return err
				}
				filter = &c
			}
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				printTasks(cmd.OutOrStdout(), tr.Tasks(), filter)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show one category (health|work|personal|fitness|learning)")
	return cmd
}

func newAddCmd() *cobra.Command {
	var in tracker.TaskInput
	var category string
	var once bool

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("label is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Label = args[0]
			in.Category = tracker.Category(category)
			in.IsRecurring = !once
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				task, err := tr.AddTask(cmd.Context(), in)
				if err != nil {
					return err
				}
				printAdded(cmd.OutOrStdout(), task, len(tr.Tasks()))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in.Emoji, "emoji", "e", "", "Emoji shown next to the label")
	cmd.Flags().StringVarP(&category, "category", "c", string(tracker.DefaultCategory), "Category (health|work|personal|fitness|learning)")
	cmd.Flags().IntVarP(&in.Target, "target", "t", 1, "Daily target, 1 for a done/not done habit")
	cmd.Flags().StringVarP(&in.Unit, "unit", "u", "", "Unit of the target (min, glasses, pages)")
	cmd.Flags().BoolVar(&once, "once", false, "Do not repeat the habit tomorrow")
	return cmd
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <n> <value>",
		Short: "Set the progress of habit n",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("value must be a whole number: %w", err)
			}
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				task, err := tracker.TaskAt(tr.Tasks(), args[0])
				if err != nil {
					return err
				}
				out, err := tr.SetProgress(cmd.Context(), task.ID, value)
				if err != nil {
					return err
				}
				printOutcome(cmd.OutOrStdout(), out, tr.Score())
				return nil
			})
		},
	}
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <n>",
		Short: "Mark habit n done (taps toggle it back)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				task, err := tracker.TaskAt(tr.Tasks(), args[0])
				if err != nil {
					return err
				}
				var out tracker.Outcome
				if tr.Method() == tracker.CheckInTap {
					out, err = tr.Toggle(cmd.Context(), task.ID)
				} else {
					out, err = tr.SetProgress(cmd.Context(), task.ID, task.Target)
				}
				if err != nil {
					return err
				}
				printOutcome(cmd.OutOrStdout(), out, tr.Score())
				return nil
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <n>",
		Short: "Remove habit n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				task, err := tracker.TaskAt(tr.Tasks(), args[0])
				if err != nil {
					return err
				}
				if err := tr.DeleteTask(cmd.Context(), task.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), task.Emoji, task.Label)
				return nil
			})
		},
	}
}

func newModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode [swipe|tap]",
		Short: "Show or set how check-ins work",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				if len(args) == 1 {
					method, err := tracker.ParseCheckInMethod(args[0])
					if err != nil {
						return err
					}
					if err := tr.SetCheckInMethod(cmd.Context(), method); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Check-in mode", tr.Method()))
				return nil
			})
		},
	}
}

func printTasks(w io.Writer, tasks []tracker.Task, filter *tracker.Category) {
	title := "Today's habits"
	if filter != nil {
		title += " · " + filter.Title()
	}
	fmt.Fprintln(w, ui.Heading(ui.IconTasks, title))
	fmt.Fprintln(w, ui.Bar(tracker.ProgressPercentage(tasks, filter)))
	fmt.Fprintln(w, "")

	shown := 0
	for i, task := range tasks {
		if filter != nil && task.Category != *filter {
			continue
		}
		shown++
		icon := ui.IconPending
		if task.Completed {
			icon = ui.IconDone
		}
		line := fmt.Sprintf("%s %s %s %s", ui.Key.Render(fmt.Sprintf("%2d.", i+1)), icon, task.Emoji, task.Label)
		if !task.IsBoolean() {
			line += " " + ui.Muted.Render(progressText(task))
		}
		if task.IsRecurring {
			line += " " + ui.IconLoop
		}
		fmt.Fprintln(w, line)
	}
	if shown == 0 {
		fmt.Fprintln(w, ui.Muted.Render("No habits yet. Add one with: dailytasks add \"Drink water\" --target 8 --unit glasses"))
	}
}

// printAdded confirms a new habit with the list position it can be addressed by.
func printAdded(w io.Writer, task tracker.Task, position int) {
	fmt.Fprintf(w, "%s %s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), task.Emoji, task.Label,
		ui.Muted.Render(fmt.Sprintf("(#%d, %s)", position, task.Category.Title())))
}

func progressText(task tracker.Task) string {
	text := fmt.Sprintf("%d/%d", task.Current, task.Target)
	if task.Unit != "" {
		text += " " + task.Unit
	}
	return text
}

func printOutcome(w io.Writer, out tracker.Outcome, score int) {
	task := out.Task
	switch {
	case out.Completed:
		fmt.Fprintln(w, ui.Gold.Render(tracker.CelebrationMessage()))
		fmt.Fprintf(w, "%s %s %s %s\n", ui.IconDone, task.Emoji, task.Label,
			ui.Good.Render(fmt.Sprintf("+%d points (%s %d)", out.Points, ui.IconStar, score)))
	case task.Completed:
		fmt.Fprintf(w, "%s %s %s %s\n", ui.IconDone, task.Emoji, task.Label, ui.Muted.Render("already done"))
	default:
		fmt.Fprintf(w, "%s %s %s %s\n", ui.IconPending, task.Emoji, task.Label, ui.Muted.Render(progressText(task)))
	}
}
