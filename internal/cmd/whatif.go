package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
)

type whatIfOptions struct {
	username string
	region   string
	rank     int
	score    int
	finish   string
}

func newWhatIfCmd() *cobra.Command {
	var opts whatIfOptions
	cmd := &cobra.Command{
		Use:     "whatif <contest>",
		Short:   "Predict the rating change of a hypothetical contest result.",
		Example: "  lazyrating whatif weekly-contest-400 --username alice --rank 120 --score 18 --finish 2024-06-02T03:41:12",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := opts.entry(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				return runWhatIf(cmd.Context(), cmd.OutOrStdout(), s.client, entry)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.username, "username", "", "username to predict for")
	flags.StringVar(&opts.region, "region", predictor.RegionUS, "data region of the user, US or CN")
	flags.IntVar(&opts.rank, "rank", 0, "final rank")
	flags.IntVar(&opts.score, "score", 0, "final score")
	flags.StringVar(&opts.finish, "finish", "", "finish time in UTC, e.g. 2024-06-02T03:41:12")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("rank")
	return cmd
}

func (o whatIfOptions) entry(contest string) (predictor.Entry, error) {
	finish, err := predictor.ParseTime(o.finish)
	if err != nil {
		return predictor.Entry{}, fmt.Errorf("parse finish flag: %w", err)
	}
	return predictor.Entry{
		ContestName: strings.TrimSpace(contest),
		Username:    strings.TrimSpace(o.username),
		DataRegion:  strings.ToUpper(strings.TrimSpace(o.region)),
		Rank:        o.rank,
		Score:       o.score,
		FinishTime:  finish,
	}, nil
}

func runWhatIf(ctx context.Context, w io.Writer, api predictor.API, entry predictor.Entry) error {
	rating, err := api.HypotheticalEntry(ctx, entry)
	if err != nil {
		return err
	}
	t := ratingTable().Row(ratingRow(entry.Username, entry.DataRegion, rating)...)
	_, err = fmt.Fprintln(w, t.String())
	return err
}
