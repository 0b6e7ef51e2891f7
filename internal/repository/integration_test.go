//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/testutil"
)

func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// ============================================================================
// Users
// ============================================================================

func TestIntegrationUsers_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, uniqueEmail("john"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byID, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("Email mismatch: got %q, want %q", byID.Email, user.Email)
	}
	if byID.Role != model.RoleMember {
		t.Errorf("Role mismatch: got %q, want %q", byID.Role, model.RoleMember)
	}

	byEmail, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", byEmail.ID, user.ID)
	}
}

func TestIntegrationUsers_DuplicateEmail(t *testing.T) {
	ctx, repo := newTestEnv(t)

	email := uniqueEmail("dup")
	if err := repo.CreateUser(ctx, testutil.NewTestUser(t, email)); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	err := repo.CreateUser(ctx, testutil.NewTestUser(t, email))
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestIntegrationUsers_NotFound(t *testing.T) {
	ctx, repo := newTestEnv(t)

	_, err := repo.GetUserByEmail(ctx, uniqueEmail("ghost"))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ============================================================================
// Gyms
// ============================================================================

func TestIntegrationGyms_CreateAndSearch(t *testing.T) {
	ctx, repo := newTestEnv(t)

	gym := testutil.NewTestGym(t, "JavaScript Gym", -27.2092052, -49.6401091)
	if err := repo.CreateGym(ctx, gym); err != nil {
		t.Fatalf("CreateGym failed: %v", err)
	}
	other := testutil.NewTestGym(t, "TypeScript Gym", -27.2092052, -49.6401091)
	if err := repo.CreateGym(ctx, other); err != nil {
		t.Fatalf("CreateGym failed: %v", err)
	}

	retrieved, err := repo.GetGymByID(ctx, gym.ID)
	if err != nil {
		t.Fatalf("GetGymByID failed: %v", err)
	}
	if retrieved.Title != gym.Title {
		t.Errorf("Title mismatch: got %q, want %q", retrieved.Title, gym.Title)
	}
	if retrieved.Latitude != gym.Latitude {
		t.Errorf("Latitude mismatch: got %v, want %v", retrieved.Latitude, gym.Latitude)
	}

	results, err := repo.SearchGyms(ctx, "javascript", 1)
	if err != nil {
		t.Fatalf("SearchGyms failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d gyms, want 1", len(results))
	}
	if results[0].ID != gym.ID {
		t.Errorf("ID mismatch: got %q, want %q", results[0].ID, gym.ID)
	}
}

func TestIntegrationGyms_Nearby(t *testing.T) {
	ctx, repo := newTestEnv(t)

	near := testutil.NewTestGym(t, "Near Gym", -27.2092052, -49.6401091)
	if err := repo.CreateGym(ctx, near); err != nil {
		t.Fatalf("CreateGym failed: %v", err)
	}
	far := testutil.NewTestGym(t, "Far Gym", -25.3727822, -49.0839456)
	if err := repo.CreateGym(ctx, far); err != nil {
		t.Fatalf("CreateGym failed: %v", err)
	}

	results, err := repo.GetNearbyGyms(ctx, -27.2092052, -49.6401091, 10)
	if err != nil {
		t.Fatalf("GetNearbyGyms failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d gyms, want 1", len(results))
	}
	if results[0].ID != near.ID {
		t.Errorf("ID mismatch: got %q, want %q", results[0].ID, near.ID)
	}
}

// A gym at exactly the caller's coordinates can push the acos argument
// marginally above 1 through floating-point error; the query must clamp
// it instead of erroring out.
func TestIntegrationGyms_NearbySameCoordinates(t *testing.T) {
	ctx, repo := newTestEnv(t)

	gym := testutil.NewTestGym(t, "Same Spot Gym", -27.2092052, -49.6401091)
	if err := repo.CreateGym(ctx, gym); err != nil {
		t.Fatalf("CreateGym failed: %v", err)
	}

	results, err := repo.GetNearbyGyms(ctx, -27.2092052, -49.6401091, 10)
	if err != nil {
		t.Fatalf("GetNearbyGyms failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d gyms, want 1", len(results))
	}
	if results[0].ID != gym.ID {
		t.Errorf("ID mismatch: got %q, want %q", results[0].ID, gym.ID)
	}
}

// ============================================================================
// Check-ins
// ============================================================================

func seedUserAndGym(t *testing.T, ctx context.Context, repo *Repository) (string, string) {
	t.Helper()
	user := testutil.NewTestUser(t, uniqueEmail("member"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	gym := testutil.NewTestGym(t, "JavaScript Gym", -27.2092052, -49.6401091)
	if err := repo.CreateGym(ctx, gym); err != nil {
		t.Fatalf("CreateGym failed: %v", err)
	}
	return user.ID, gym.ID
}

func TestIntegrationCheckIns_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)
	userID, gymID := seedUserAndGym(t, ctx, repo)

	checkIn := testutil.NewTestCheckIn(t, userID, gymID, time.Now())
	if err := repo.CreateCheckIn(ctx, checkIn); err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}

	retrieved, err := repo.GetCheckInByID(ctx, checkIn.ID)
	if err != nil {
		t.Fatalf("GetCheckInByID failed: %v", err)
	}
	if retrieved.UserID != userID {
		t.Errorf("UserID mismatch: got %q, want %q", retrieved.UserID, userID)
	}
	if retrieved.IsValidated() {
		t.Error("new check-in should not be validated")
	}

	onDate, err := repo.GetCheckInByUserOnDate(ctx, userID, time.Now())
	if err != nil {
		t.Fatalf("GetCheckInByUserOnDate failed: %v", err)
	}
	if onDate.ID != checkIn.ID {
		t.Errorf("ID mismatch: got %q, want %q", onDate.ID, checkIn.ID)
	}
}

func TestIntegrationCheckIns_DuplicateSameDay(t *testing.T) {
	ctx, repo := newTestEnv(t)
	userID, gymID := seedUserAndGym(t, ctx, repo)

	now := time.Now()
	if err := repo.CreateCheckIn(ctx, testutil.NewTestCheckIn(t, userID, gymID, now)); err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}

	err := repo.CreateCheckIn(ctx, testutil.NewTestCheckIn(t, userID, gymID, now.Add(time.Minute)))
	if !errors.Is(err, ErrDuplicateCheckIn) {
		t.Fatalf("expected ErrDuplicateCheckIn, got %v", err)
	}
}

func TestIntegrationCheckIns_Validate(t *testing.T) {
	ctx, repo := newTestEnv(t)
	userID, gymID := seedUserAndGym(t, ctx, repo)

	checkIn := testutil.NewTestCheckIn(t, userID, gymID, time.Now())
	if err := repo.CreateCheckIn(ctx, checkIn); err != nil {
		t.Fatalf("CreateCheckIn failed: %v", err)
	}

	validatedAt := time.Now().UTC()
	checkIn.ValidatedAt = &validatedAt
	if err := repo.SaveCheckIn(ctx, checkIn); err != nil {
		t.Fatalf("SaveCheckIn failed: %v", err)
	}

	retrieved, err := repo.GetCheckInByID(ctx, checkIn.ID)
	if err != nil {
		t.Fatalf("GetCheckInByID failed: %v", err)
	}
	if !retrieved.IsValidated() {
		t.Error("check-in should be validated")
	}
}

func TestIntegrationCheckIns_HistoryAndCount(t *testing.T) {
	ctx, repo := newTestEnv(t)
	userID, gymID := seedUserAndGym(t, ctx, repo)

	// One check-in per day, spread across past days to stay under the
	// daily limit.
	for i := 0; i < 22; i++ {
		created := time.Now().AddDate(0, 0, -i)
		if err := repo.CreateCheckIn(ctx, testutil.NewTestCheckIn(t, userID, gymID, created)); err != nil {
			t.Fatalf("CreateCheckIn %d failed: %v", i, err)
		}
	}

	page1, err := repo.ListCheckInsByUser(ctx, userID, 1)
	if err != nil {
		t.Fatalf("ListCheckInsByUser failed: %v", err)
	}
	if len(page1) != PageSize {
		t.Errorf("page 1: got %d check-ins, want %d", len(page1), PageSize)
	}

	page2, err := repo.ListCheckInsByUser(ctx, userID, 2)
	if err != nil {
		t.Fatalf("ListCheckInsByUser failed: %v", err)
	}
	if len(page2) != 2 {
		t.Errorf("page 2: got %d check-ins, want 2", len(page2))
	}

	count, err := repo.CountCheckInsByUser(ctx, userID)
	if err != nil {
		t.Fatalf("CountCheckInsByUser failed: %v", err)
	}
	if count != 22 {
		t.Errorf("count = %d, want 22", count)
	}
}
