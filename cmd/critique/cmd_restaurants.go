package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/core/service"
)

var restaurantsFlags struct {
	rating string
	skip   int
	search string
}

var restaurantsCmd = &cobra.Command{
	Use:     "restaurants",
	Aliases: []string{"ls"},
	Short:   "List restaurants",
	Args:    cobra.NoArgs,
	RunE:    runRestaurants,
}

var restaurantInputFlags struct {
	name        string
	description string
	image       string
}

var restaurantAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a restaurant (owners)",
	Args:  cobra.NoArgs,
	RunE:  runRestaurantAdd,
}

var restaurantEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a restaurant's name, description and image",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestaurantEdit,
}

var restaurantDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Soft delete a restaurant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRestaurantStatus(cmd, args[0], domain.StatusInactive)
	},
}

var restaurantActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Restore a soft deleted restaurant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRestaurantStatus(cmd, args[0], domain.StatusActive)
	},
}

var restaurantCmd = &cobra.Command{
	Use:   "restaurant <id>",
	Short: "Show a restaurant with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestaurant,
}

var reviewInputFlags struct {
	rating  float64
	comment string
	visited string
}

var restaurantReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Review a restaurant",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestaurantReview,
}

func init() {
	f := restaurantsCmd.Flags()
	f.StringVar(&restaurantsFlags.rating, "rating", string(domain.RatingAny), "Minimum rating, 0 to 5")
	f.IntVar(&restaurantsFlags.skip, "skip", 0, "Number of restaurants to skip")
	f.StringVar(&restaurantsFlags.search, "search", "", "Name search")

	for _, c := range []*cobra.Command{restaurantAddCmd, restaurantEditCmd} {
		f := c.Flags()
		f.StringVar(&restaurantInputFlags.name, "name", "", "Restaurant name (required)")
		f.StringVar(&restaurantInputFlags.description, "description", "", "Short description")
		f.StringVar(&restaurantInputFlags.image, "image", "", "Image URL")
		_ = c.MarkFlagRequired("name")
	}
	restaurantsCmd.AddCommand(restaurantAddCmd, restaurantEditCmd, restaurantDeactivateCmd, restaurantActivateCmd)

	f = restaurantReviewCmd.Flags()
	f.Float64Var(&reviewInputFlags.rating, "rating", 0, "Rating, 1 to 5 (required)")
	f.StringVar(&reviewInputFlags.comment, "comment", "", "What you thought")
	f.StringVar(&reviewInputFlags.visited, "visited", "", "Date of the visit, YYYY-MM-DD (default today)")
	_ = restaurantReviewCmd.MarkFlagRequired("rating")
	restaurantCmd.AddCommand(restaurantReviewCmd)
}

func runRestaurants(cmd *cobra.Command, _ []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view, err := service.NewRestaurantService(s).List(cmd.Context(), domain.RestaurantFilter{
		Rating: domain.RatingFilter(restaurantsFlags.rating),
		Skip:   restaurantsFlags.skip,
		Search: strings.TrimSpace(restaurantsFlags.search),
	})
	if err != nil {
		return finish(cmd, s, err)
	}
	printRestaurants(cmd, view)
	return finish(cmd, s, nil)
}

func runRestaurantAdd(cmd *cobra.Command, _ []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view, err := service.NewRestaurantService(s).Create(cmd.Context(), restaurantInput())
	if err != nil {
		return finish(cmd, s, err)
	}
	printRestaurants(cmd, view)
	return finish(cmd, s, nil)
}

func runRestaurantEdit(cmd *cobra.Command, args []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view, err := service.NewRestaurantService(s).Update(cmd.Context(), args[0], restaurantInput())
	if err != nil {
		return finish(cmd, s, err)
	}
	printRestaurants(cmd, view)
	return finish(cmd, s, nil)
}

func runRestaurantStatus(cmd *cobra.Command, id string, status domain.Status) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	svc := service.NewRestaurantService(s)
	var view service.RestaurantsView
	if status == domain.StatusInactive {
		view, err = svc.Deactivate(cmd.Context(), id)
	} else {
		view, err = svc.Activate(cmd.Context(), id)
	}
	if err != nil {
		return finish(cmd, s, err)
	}
	printRestaurants(cmd, view)
	return finish(cmd, s, nil)
}

func restaurantInput() ports.RestaurantInput {
	return ports.RestaurantInput{
		Name:        strings.TrimSpace(restaurantInputFlags.name),
		Description: restaurantInputFlags.description,
		Image:       restaurantInputFlags.image,
	}
}

func printRestaurants(cmd *cobra.Command, view service.RestaurantsView) {
	out := cmd.OutOrStdout()
	if view.EmptyMessage != "" {
		fmt.Fprintln(out, view.EmptyMessage)
		return
	}
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Name", "Rating", "Status", "Actions"})
	for _, r := range view.Restaurants {
		t.AppendRow(table.Row{r.ID, r.Name, fmt.Sprintf("%.1f", r.AvgRating), r.Status, actionList(r.Actions)})
	}
	t.SetCaption("rating >= %s, skip %d", view.Rating, view.Skip)
	t.Render()
}

func runRestaurant(cmd *cobra.Command, args []string) error {
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view, err := service.NewRestaurantService(s).Detail(cmd.Context(), args[0])
	if err != nil {
		return finish(cmd, s, err)
	}
	printRestaurantDetail(cmd, view)
	return finish(cmd, s, nil)
}

func runRestaurantReview(cmd *cobra.Command, args []string) error {
	visited := time.Now()
	if reviewInputFlags.visited != "" {
		d, err := time.ParseInLocation(time.DateOnly, reviewInputFlags.visited, time.Local)
		if err != nil {
			return fmt.Errorf("--visited: %w", err)
		}
		visited = d
	}
	s, err := requireLogin(cmd)
	if err != nil {
		return err
	}
	view, err := service.NewRestaurantService(s).AddReview(cmd.Context(), args[0], ports.ReviewInput{
		Rating:    reviewInputFlags.rating,
		Comment:   reviewInputFlags.comment,
		DateVisit: visited,
	})
	if err != nil {
		return finish(cmd, s, err)
	}
	printRestaurantDetail(cmd, view)
	return finish(cmd, s, nil)
}

func printRestaurantDetail(cmd *cobra.Command, view service.RestaurantDetailView) {
	out := cmd.OutOrStdout()
	r := view.Restaurant
	fmt.Fprintf(out, "%s  %.1f (%s)\n", r.Name, r.AvgRating, view.RatingsLabel)
	if r.Description != "" {
		fmt.Fprintln(out, r.Description)
	}
	if view.Highest != nil {
		fmt.Fprintf(out, "Highest: %.1f by %s: %s\n", view.Highest.Rating, view.Highest.Author.Name, view.Highest.Comment)
		fmt.Fprintf(out, "Lowest:  %.1f by %s: %s\n", view.Lowest.Rating, view.Lowest.Author.Name, view.Lowest.Comment)
	}
	if view.EmptyMessage != "" {
		fmt.Fprintln(out, view.EmptyMessage)
		return
	}
	printReviewCards(cmd, view.Reviews, false)
}

func printReviewCards(cmd *cobra.Command, cards []service.ReviewCard, withRestaurant bool) {
	t := newTable(cmd.OutOrStdout())
	header := table.Row{"ID", "Author", "Rating", "Visited", "Comment", "Reply", "Inactive"}
	if withRestaurant {
		header = append(table.Row{"Restaurant"}, header...)
	}
	t.AppendHeader(header)
	for _, c := range cards {
		reply, _ := c.Reply()
		row := table.Row{
			c.ID,
			fmt.Sprintf("%s [%s]", c.Author.Name, c.Initials),
			fmt.Sprintf("%.1f", c.Rating),
			visitDate(c.DateVisit),
			c.Comment,
			reply.Comment,
			yesNo(c.Inactive),
		}
		if withRestaurant {
			row = append(table.Row{c.RestaurantName}, row...)
		}
		t.AppendRow(row)
	}
	t.Render()
}

func visitDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
