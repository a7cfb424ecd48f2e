package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/ui/format"
)

func newPredictCmd() *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "predict <contest> <username>...",
		Short: "Print the predicted rating change of users in a contest.",
		Example: "  lazyrating predict weekly-contest-400 alice bob\n" +
			"  lazyrating predict biweekly-contest-130 --region CN zhangsan",
		Args: cobra.RangeArgs(2, 1+predictor.MaxPredictedUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				return runPredict(cmd.Context(), cmd.OutOrStdout(), s.client, args[0], args[1:], region)
			})
		},
	}
	cmd.Flags().StringVar(&region, "region", predictor.RegionUS, "data region of the users, US or CN")
	return cmd
}

// withSession resolves the shared flags and runs fn with a live session.
func withSession(cmd *cobra.Command, fn func(*session) error) error {
	cfg, err := resolveConfig(cmd.Flags(), os.Getenv)
	if err != nil {
		return err
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func runPredict(ctx context.Context, w io.Writer, api predictor.API, contest string, usernames []string, region string) error {
	region = strings.ToUpper(strings.TrimSpace(region))
	users := make([]predictor.UserKey, len(usernames))
	for i, name := range usernames {
		users[i] = predictor.UserKey{Username: strings.TrimSpace(name), DataRegion: region}
	}

	ratings, err := api.PredictedRating(ctx, contest, users)
	if err != nil {
		return err
	}

	t := ratingTable()
	for i, user := range users {
		var rating predictor.Rating
		if i < len(ratings) && ratings[i] != nil {
			rating = *ratings[i]
		}
		t.Row(ratingRow(user.Username, user.DataRegion, rating)...)
	}
	_, err = fmt.Fprintln(w, t.String())
	return err
}

func ratingTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Username", "Region", "Old Rating", "Delta", "New Rating")
}

func ratingRow(username, region string, rating predictor.Rating) []string {
	if !rating.Known() {
		return []string{username, region, "-", "pending", "-"}
	}
	return []string{
		username,
		region,
		format.Rating(rating.Old),
		format.Delta(rating.Delta),
		format.Rating(rating.New),
	}
}
