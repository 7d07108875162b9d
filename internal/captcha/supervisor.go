package captcha

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gatekeeper/internal/domain"
)

// Supervisor orchestrates one verification session per new-members event:
// it restricts the joiners, runs one provider task per user concurrently,
// and enforces the wall-clock deadline over every still-pending task.
type Supervisor struct {
	api       ChatAPI
	events    *Dispatcher
	settings  SettingsSource
	admins    AdminChecker
	logger    *zap.Logger
	leftPerms Permissions
}

// NewSupervisor wires a supervisor. admins may be nil, which disables
// admin-cancel buttons for the whole bot.
func NewSupervisor(
	api ChatAPI,
	events *Dispatcher,
	settings SettingsSource,
	admins AdminChecker,
	logger *zap.Logger,
) *Supervisor {
	return &Supervisor{
		api:       api,
		events:    events,
		settings:  settings,
		admins:    admins,
		logger:    logger,
		leftPerms: LeftRestrictions(),
	}
}

// Result is the closed session's outcome for one user
type Result struct {
	User    domain.User
	Outcome Outcome
}

// HandleJoin runs the verification session for one new-members event and
// blocks until the session closes, returning one result per user. Callers
// run it in its own goroutine so other chats and callbacks keep flowing.
func (s *Supervisor) HandleJoin(ctx context.Context, chatID int64, users []domain.User, eventTime time.Time) []Result {
	if len(users) == 0 {
		return nil
	}

	// Restrict first, before the settings load: the members stay muted even
	// if the store is slow or the captcha turns out to be disabled.
	for _, user := range users {
		if err := s.api.Restrict(chatID, user.ID, NoPermissions()); err != nil {
			s.logger.Warn("failed to restrict new member",
				zap.Int64("chat_id", chatID),
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	settings, err := s.settings.Settings(chatID)
	if err != nil {
		s.logger.Error("failed to load chat settings, using defaults",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		settings = domain.DefaultSettings(chatID)
	}

	if !settings.Enabled {
		results := make([]Result, 0, len(users))
		for _, user := range users {
			if err := s.api.Restrict(chatID, user.ID, s.leftPerms); err != nil {
				s.logger.Warn("failed to lift restrictions",
					zap.Int64("chat_id", chatID),
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
			}
			results = append(results, Result{User: user, Outcome: Passed})
		}
		return results
	}

	sess := &Session{
		ChatID:    chatID,
		Settings:  settings,
		Deadline:  eventTime.Add(settings.Provider.CheckTime()),
		api:       s.api,
		events:    s.events,
		admins:    s.admins,
		logger:    s.logger,
		leftPerms: s.leftPerms,
	}

	provider := providerFor(settings.Provider)

	taskCtx, cancel := context.WithDeadline(ctx, sess.Deadline)
	defer cancel()

	var wg sync.WaitGroup
	for _, user := range users {
		t := NewTask(user)
		sess.tasks = append(sess.tasks, t)
		wg.Add(1)
		go func() {
			defer wg.Done()
			provider.Run(taskCtx, sess, t)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	// Fan-in: all tasks resolved, or the deadline elapsed. The deadline is
	// authoritative; whatever a task would have decided shortly after no
	// longer matters.
	select {
	case <-done:
	case <-taskCtx.Done():
	}
	cancel()
	<-done

	var passed, failed int
	results := make([]Result, 0, len(sess.tasks))
	for _, t := range sess.tasks {
		sess.fail(t) // no-op for tasks that already resolved
		outcome := t.Outcome()
		if outcome == Failed {
			failed++
		} else {
			passed++
		}
		results = append(results, Result{User: t.User, Outcome: outcome})
	}

	sess.purge()

	s.logger.Info("verification session closed",
		zap.Int64("chat_id", chatID),
		zap.String("provider", string(settings.Provider.Type)),
		zap.Int("passed", passed),
		zap.Int("failed", failed),
	)
	return results
}

// providerFor dispatches over the closed provider variant set
func providerFor(cfg domain.ProviderConfig) Provider {
	switch cfg.Type {
	case domain.ProviderSlotMachine:
		return SlotMachineProvider{}
	case domain.ProviderExpression:
		return ExpressionProvider{}
	default:
		return ButtonProvider{}
	}
}

// Provider runs the full challenge protocol for one user task. It returns
// once the task has a terminal outcome or its context is cancelled.
type Provider interface {
	Run(ctx context.Context, s *Session, t *Task)
}
