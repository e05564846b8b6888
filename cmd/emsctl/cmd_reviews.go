package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ems/internal/domain/employee"
	"ems/internal/domain/performance"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Performance reviews",
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviews (all for admins, your own otherwise)",
	RunE:  runReviewList,
}

var reviewFlags struct {
	employee int64
	period   string
	performance.Update
}

var reviewAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a review",
	RunE:  runReviewAdd,
}

var reviewUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the scores or comments of a review",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewUpdate,
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewDelete,
}

func init() {
	f := reviewAddCmd.Flags()
	f.Int64Var(&reviewFlags.employee, "employee", 0, "Employee number (required)")
	f.StringVar(&reviewFlags.period, "period", "", "Review period, e.g. 2024-Q1 (required)")
	reviewScoreFlags(f)
	_ = reviewAddCmd.MarkFlagRequired("employee")
	_ = reviewAddCmd.MarkFlagRequired("period")

	reviewScoreFlags(reviewUpdateCmd.Flags())

	reviewsCmd.AddCommand(reviewListCmd, reviewAddCmd, reviewUpdateCmd, reviewDeleteCmd)
}

func reviewScoreFlags(f *pflag.FlagSet) {
	f.IntVar(&reviewFlags.Productivity, "productivity", 3, "Productivity score (1-5)")
	f.IntVar(&reviewFlags.Communication, "communication", 3, "Communication score (1-5)")
	f.IntVar(&reviewFlags.Teamwork, "teamwork", 3, "Teamwork score (1-5)")
	f.IntVar(&reviewFlags.Punctuality, "punctuality", 3, "Punctuality score (1-5)")
	f.StringVar(&reviewFlags.Reviewer, "reviewer", "", "Reviewer name")
	f.StringVar(&reviewFlags.Comments, "comments", "", "Comments")
}

func runReviewList(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	list := app.Store.Reviews()
	if rootFlags.json {
		return printJSON(cmd, list)
	}
	w := newTable(cmd)
	fmt.Fprintf(w, "ID\tEmployee\tPeriod\tProd\tComm\tTeam\tPunct\tScore\tReviewer\n")
	for _, r := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%.2f\t%s\n",
			r.ID, employeeName(app, r.EmployeeID), r.Period,
			r.Productivity, r.Communication, r.Teamwork, r.Punctuality, r.FinalScore, r.Reviewer)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(list) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Average score: %.2f\n", performance.Average(list))
	}
	return nil
}

func runReviewAdd(cmd *cobra.Command, _ []string) error {
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	in := performance.Input{
		EmployeeID: employee.BusinessID(reviewFlags.employee),
		Period:     reviewFlags.period,
		Scores:     reviewFlags.Scores,
		Reviewer:   reviewFlags.Reviewer,
		Comments:   reviewFlags.Comments,
	}
	if in.Reviewer == "" {
		in.Reviewer = app.Store.Identity().User.Name()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Final score: %.2f\n", performance.FinalScore(in.Scores))
	return done(cmd, app.Store.AddReview(cmd.Context(), in), "Review added")
}

func runReviewUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseInt64(args[0], "review id")
	if err != nil {
		return err
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	current, ok := app.Store.Review(id)
	if !ok {
		return fmt.Errorf("review %d not found", id)
	}
	upd := performance.UpdateFrom(current)
	f := cmd.Flags()
	if f.Changed("productivity") {
		upd.Productivity = reviewFlags.Productivity
	}
	if f.Changed("communication") {
		upd.Communication = reviewFlags.Communication
	}
	if f.Changed("teamwork") {
		upd.Teamwork = reviewFlags.Teamwork
	}
	if f.Changed("punctuality") {
		upd.Punctuality = reviewFlags.Punctuality
	}
	if f.Changed("reviewer") {
		upd.Reviewer = reviewFlags.Reviewer
	}
	if f.Changed("comments") {
		upd.Comments = reviewFlags.Comments
	}
	return done(cmd, app.Store.UpdateReview(cmd.Context(), id, upd), "Review updated")
}

func runReviewDelete(cmd *cobra.Command, args []string) error {
	id, err := parseInt64(args[0], "review id")
	if err != nil {
		return err
	}
	app, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	return done(cmd, app.Store.DeleteReview(cmd.Context(), id), "Review deleted")
}
