package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/service"
)

var reviewsFlags struct {
	skip int
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Moderate reviews (admins)",
	Args:  cobra.NoArgs,
	RunE:  runReviews,
}

var replyFlags struct {
	comment string
}

var reviewReplyCmd = &cobra.Command{
	Use:   "reply <id>",
	Short: "Reply to a review (owners and admins)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewReply,
}

var reviewDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Soft delete a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReviewStatus(cmd, args[0], domain.StatusInactive)
	},
}

var reviewActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Restore a soft deleted review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReviewStatus(cmd, args[0], domain.StatusActive)
	},
}

func init() {
	reviewsCmd.Flags().IntVar(&reviewsFlags.skip, "skip", 0, "Number of reviews to skip")
	reviewReplyCmd.Flags().StringVar(&replyFlags.comment, "comment", "", "Reply text (required)")
	_ = reviewReplyCmd.MarkFlagRequired("comment")
	reviewsCmd.AddCommand(reviewReplyCmd, reviewDeactivateCmd, reviewActivateCmd)
}

func runReviews(cmd *cobra.Command, _ []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view, err := service.NewReviewService(s).List(cmd.Context(), domain.ReviewFilter{Skip: reviewsFlags.skip})
	if err != nil {
		return finish(cmd, s, err)
	}
	printReviews(cmd, view)
	return finish(cmd, s, nil)
}

func runReviewReply(cmd *cobra.Command, args []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	card, err := service.NewReviewService(s).Reply(cmd.Context(), args[0], replyFlags.comment)
	if err != nil {
		return finish(cmd, s, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Replied to %s's review of %.1f\n", card.Author.Name, card.Rating)
	return finish(cmd, s, nil)
}

func runReviewStatus(cmd *cobra.Command, id string, status domain.Status) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	svc := service.NewReviewService(s)
	var view service.ReviewsView
	if status == domain.StatusInactive {
		view, err = svc.Deactivate(cmd.Context(), id)
	} else {
		view, err = svc.Activate(cmd.Context(), id)
	}
	if err != nil {
		return finish(cmd, s, err)
	}
	printReviews(cmd, view)
	return finish(cmd, s, nil)
}

func printReviews(cmd *cobra.Command, view service.ReviewsView) {
	if view.EmptyMessage != "" {
		fmt.Fprintln(cmd.OutOrStdout(), view.EmptyMessage)
		return
	}
	printReviewCards(cmd, view.Reviews, true)
}
