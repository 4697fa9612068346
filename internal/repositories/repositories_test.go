package repositories

import (
	"errors"
	"testing"
	"time"

	"interviewprep/internal/models"
	"interviewprep/internal/testhelpers"
)

func seedUser(t *testing.T, users *UserRepository, name string) *models.User {
	t.Helper()
	user := &models.User{Username: name, PasswordHash: "hash"}
	if err := users.CreateUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestUserRepositoryLookup(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := &UserRepository{DB: db}
	seedUser(t, users, "alice")

	if _, err := users.GetUserByUsername("alice"); err != nil {
		t.Fatalf("GetUserByUsername returned error: %v", err)
	}
	if _, err := users.GetUserByUsername("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := users.GetUserByID(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound by ID, got %v", err)
	}
}

func TestSetActiveSessionPerType(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := &UserRepository{DB: db}
	sessions := &SessionRepository{DB: db}
	user := seedUser(t, users, "alice")

	coach := &models.InterviewSession{UserID: user.ID, SessionType: models.SessionTypeCoach, QuestionsData: "[]"}
	practice := &models.InterviewSession{UserID: user.ID, SessionType: models.SessionTypePractice, QuestionsData: "[]"}
	for _, s := range []*models.InterviewSession{coach, practice} {
		if err := sessions.Create(s); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
	}

	if err := users.SetActiveSession(user.ID, models.SessionTypeCoach, &coach.ID); err != nil {
		t.Fatalf("SetActiveSession returned error: %v", err)
	}
	if err := users.SetActiveSession(user.ID, models.SessionTypePractice, &practice.ID); err != nil {
		t.Fatalf("SetActiveSession returned error: %v", err)
	}

	loaded, _ := users.GetUserByID(user.ID)
	if loaded.ActiveCoachSessionID == nil || *loaded.ActiveCoachSessionID != coach.ID {
		t.Fatalf("coach pointer mismatch: %v", loaded.ActiveCoachSessionID)
	}
	if loaded.ActivePracticeSessionID == nil || *loaded.ActivePracticeSessionID != practice.ID {
		t.Fatalf("practice pointer mismatch: %v", loaded.ActivePracticeSessionID)
	}

	// clearing one kind leaves the other alone
	if err := users.SetActiveSession(user.ID, models.SessionTypeCoach, nil); err != nil {
		t.Fatalf("clearing pointer returned error: %v", err)
	}
	loaded, _ = users.GetUserByID(user.ID)
	if loaded.ActiveCoachSessionID != nil {
		t.Fatal("coach pointer should be cleared")
	}
	if loaded.ActivePracticeSessionID == nil {
		t.Fatal("practice pointer should survive")
	}

	if err := users.SetActiveSession(9999, models.SessionTypeCoach, nil); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown user, got %v", err)
	}
}

func TestClearActiveSessions(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := &UserRepository{DB: db}
	sessions := &SessionRepository{DB: db}
	user := seedUser(t, users, "alice")

	sess := &models.InterviewSession{UserID: user.ID, SessionType: models.SessionTypePractice, QuestionsData: "[]"}
	if err := sessions.Create(sess); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := users.SetActiveSession(user.ID, models.SessionTypePractice, &sess.ID); err != nil {
		t.Fatalf("SetActiveSession returned error: %v", err)
	}

	if err := users.ClearActiveSessions(user.ID); err != nil {
		t.Fatalf("ClearActiveSessions returned error: %v", err)
	}
	loaded, _ := users.GetUserByID(user.ID)
	if loaded.ActiveCoachSessionID != nil || loaded.ActivePracticeSessionID != nil {
		t.Fatal("both pointers should be cleared")
	}
}

func TestSessionRepositorySaveQuestions(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := &UserRepository{DB: db}
	sessions := &SessionRepository{DB: db}
	user := seedUser(t, users, "alice")

	sess := &models.InterviewSession{UserID: user.ID, SessionType: models.SessionTypeCoach, QuestionsData: "[]"}
	if err := sessions.Create(sess); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	records := []models.QuestionRecord{{Question: "Why Go?", Answer: "Concurrency model."}}
	if err := sess.SetQuestions(records); err != nil {
		t.Fatalf("SetQuestions returned error: %v", err)
	}
	if err := sessions.SaveQuestions(sess); err != nil {
		t.Fatalf("SaveQuestions returned error: %v", err)
	}

	loaded, err := sessions.GetByID(sess.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	got, err := loaded.Questions()
	if err != nil {
		t.Fatalf("Questions returned error: %v", err)
	}
	if len(got) != 1 || got[0].Question != "Why Go?" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := sessions.GetByID(9999); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStaleActiveSessions(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := &UserRepository{DB: db}
	sessions := &SessionRepository{DB: db}
	user := seedUser(t, users, "alice")

	active := &models.InterviewSession{UserID: user.ID, SessionType: models.SessionTypePractice, QuestionsData: "[]"}
	orphan := &models.InterviewSession{UserID: user.ID, SessionType: models.SessionTypeCoach, QuestionsData: "[]"}
	for _, s := range []*models.InterviewSession{active, orphan} {
		if err := sessions.Create(s); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
	}
	// only "active" is referenced by a user pointer
	if err := users.SetActiveSession(user.ID, models.SessionTypePractice, &active.ID); err != nil {
		t.Fatalf("SetActiveSession returned error: %v", err)
	}

	stale, err := sessions.StaleActiveSessions(time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("StaleActiveSessions returned error: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != active.ID {
		t.Fatalf("expected only the referenced session, got %+v", stale)
	}

	// nothing is stale against a cutoff in the past
	stale, err = sessions.StaleActiveSessions(time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("StaleActiveSessions returned error: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("expected no stale sessions, got %d", len(stale))
	}
}

func TestResumeRepositoryLatest(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := &UserRepository{DB: db}
	resumes := &ResumeRepository{DB: db}
	user := seedUser(t, users, "alice")

	if _, err := resumes.GetLatestByUserID(user.ID); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}

	older := &models.ResumeResult{UserID: user.ID, MatchScore: "50%"}
	if err := resumes.Create(older); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	newer := &models.ResumeResult{UserID: user.ID, MatchScore: "80%"}
	newer.CreatedAt = older.CreatedAt.Add(time.Second)
	if err := resumes.Create(newer); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	latest, err := resumes.GetLatestByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetLatestByUserID returned error: %v", err)
	}
	if latest.MatchScore != "80%" {
		t.Fatalf("expected the newest result, got %q", latest.MatchScore)
	}
}
