package scoring

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-screener/internal/types"
)

// defaultBatchParallelism bounds concurrent scoring goroutines when the
// caller does not specify a limit.
const defaultBatchParallelism = 4

// RankedJob pairs a job posting with its match result for a single résumé.
type RankedJob struct {
	Job    types.JobPosting `json:"job"`
	Result MatchResult      `json:"result"`
}

// MatchAgainstJobs scores one résumé against many job postings concurrently
// and returns the pairs sorted by score descending. Scoring itself is pure;
// the context only bounds the fan-out.
func MatchAgainstJobs(ctx context.Context, scorer MatchScorer, profile *types.ResumeProfile, jobs []types.JobPosting, maxParallel int) ([]RankedJob, error) {
	if maxParallel <= 0 {
		maxParallel = defaultBatchParallelism
	}

	results := make([]RankedJob, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = RankedJob{
				Job:    jobs[i],
				Result: scorer.ScoreMatch(profile, &jobs[i]),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Result.Score > results[j].Result.Score
	})
	return results, nil
}
