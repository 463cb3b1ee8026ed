package chartcache

import (
	"github.com/rs/zerolog"
)

// CleanupJob removes expired entries from the tree cache.
// It should be scheduled to run daily.
type CleanupJob struct {
	repo *Repository
	log  zerolog.Logger
}

// NewCleanupJob creates a new tree cache cleanup job.
func NewCleanupJob(repo *Repository, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		log:  log.With().Str("job", "tree_cache_cleanup").Logger(),
	}
}

// Run executes the cleanup job, removing all expired entries.
func (j *CleanupJob) Run() error {
	deleted, err := j.repo.DeleteExpired()
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to delete expired dasha trees")
		return err
	}

	if deleted > 0 {
		j.log.Info().
			Int64("deleted", deleted).
			Msg("Cleaned up expired dasha trees")
	}

	return nil
}

// Name returns the job name for scheduling and logging.
func (j *CleanupJob) Name() string {
	return "tree_cache_cleanup"
}
