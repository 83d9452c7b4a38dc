package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/emilythestrangee/stackit/backend/internal/database"
	"github.com/emilythestrangee/stackit/backend/internal/logging"
	"github.com/emilythestrangee/stackit/backend/internal/store"
	"github.com/emilythestrangee/stackit/backend/internal/timeago"
)

// questionsCommand prints the seeded listing, handy for checking sort and
// search without starting the server.
func questionsCommand() *cobra.Command {
	var (
		sortBy string
		query  string
		tag    string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the mock question listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.ParseSort(sortBy)
			if err != nil {
				return err
			}

			db, err := database.New(database.Options{Logger: logging.Discard(), Seed: true})
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := store.New(db.GetDB(), logging.Discard(), nil).ListQuestions(cmd.Context(), store.ListOptions{
				Sort:  s,
				Query: query,
				Tag:   tag,
				Limit: limit,
			})
			if err != nil {
				return err
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tVOTES\tANSWERS\tVIEWS\tASKED\tTITLE")
			for _, q := range res.Questions {
				mark := ""
				if q.IsAnswered {
					mark = " ✓"
				}
				fmt.Fprintf(w, "%d\t%d\t%d%s\t%d\t%s\t%s\n",
					q.ID, q.Votes, q.AnswerCount, mark, q.Views, timeago.Since(q.CreatedAt, now), q.Title)
			}
			fmt.Fprintf(w, "\n%d of %d questions\n", len(res.Questions), res.Total)
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", "newest", "newest, votes or answers")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search title and description")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only questions with this tag")
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultPageSize, "page size")
	return cmd
}
