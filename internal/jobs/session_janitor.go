package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"interviewprep/internal/repositories"
)

// SessionJanitorJob clears active-session pointers that reference sessions
// idle for longer than MaxIdle. Session rows themselves are never deleted;
// only the user's pointer is reset so a fresh session can be started.
type SessionJanitorJob struct {
	sessions *repositories.SessionRepository
	users    *repositories.UserRepository
	config   *JanitorConfig
	cron     *cron.Cron
}

// JanitorConfig contains configuration for the janitor job
type JanitorConfig struct {
	Schedule string        // Cron schedule (e.g., "0 * * * *" for hourly)
	MaxIdle  time.Duration // How long a session may go untouched before its pointer is cleared
	Enabled  bool          // Whether to run the janitor
}

// NewSessionJanitorJob creates a new janitor job
func NewSessionJanitorJob(
	sessions *repositories.SessionRepository,
	users *repositories.UserRepository,
	config *JanitorConfig,
) *SessionJanitorJob {
	return &SessionJanitorJob{
		sessions: sessions,
		users:    users,
		config:   config,
		cron:     cron.New(),
	}
}

// Start begins the scheduled janitor job
func (sj *SessionJanitorJob) Start() error {
	if !sj.config.Enabled {
		log.Println("Session janitor is disabled, skipping scheduler")
		return nil
	}

	log.Printf("Starting session janitor with schedule: %s", sj.config.Schedule)

	_, err := sj.cron.AddFunc(sj.config.Schedule, func() {
		if err := sj.RunOnce(); err != nil {
			log.Printf("Janitor run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule janitor job: %w", err)
	}

	sj.cron.Start()
	log.Println("Session janitor started successfully")

	return nil
}

// Stop stops the scheduled janitor job
func (sj *SessionJanitorJob) Stop() {
	if sj.cron != nil {
		sj.cron.Stop()
		log.Println("Session janitor stopped")
	}
}

// RunOnce performs a single cleanup pass
func (sj *SessionJanitorJob) RunOnce() error {
	cutoff := time.Now().Add(-sj.config.MaxIdle)
	stale, err := sj.sessions.StaleActiveSessions(cutoff)
	if err != nil {
		return fmt.Errorf("failed to query stale sessions: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	log.Printf("Found %d stale active sessions", len(stale))

	cleared := 0
	for _, sess := range stale {
		user, err := sj.users.GetUserByID(sess.UserID)
		if err != nil {
			log.Printf("Janitor: failed to load user %d: %v", sess.UserID, err)
			continue
		}
		// Only clear if the pointer still references this session; the user
		// may have started a newer one since the query ran.
		pointer := user.ActiveSessionID(sess.SessionType)
		if pointer == nil || *pointer != sess.ID {
			continue
		}
		if err := sj.users.SetActiveSession(sess.UserID, sess.SessionType, nil); err != nil {
			log.Printf("Janitor: failed to clear session %d for user %d: %v", sess.ID, sess.UserID, err)
			continue
		}
		cleared++
	}

	log.Printf("Janitor cleared %d stale session pointers", cleared)
	return nil
}
