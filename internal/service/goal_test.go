package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/repository"
)

func newTestGoalService(t *testing.T) (*GoalService, string, string) {
	t.Helper()
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")
	return NewGoalService(repository.NewGoalRepository(db)), alice, bob
}

func TestGoal_CreateDefaults(t *testing.T) {
	svc, alice, _ := newTestGoalService(t)

	created, err := svc.Create(context.Background(), alice, model.CreateGoalRequest{
		Name:         "Rainy day",
		TargetAmount: 5000,
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.CurrentAmount != 0 {
		t.Errorf("expected current amount 0, got %v", created.CurrentAmount)
	}
	if created.Category != model.GoalOther {
		t.Errorf("expected category other, got %q", created.Category)
	}
	if created.Deadline != nil || created.Description != nil {
		t.Errorf("expected no deadline or description, got %v and %v", created.Deadline, created.Description)
	}
}

func TestGoal_CreateFull(t *testing.T) {
	svc, alice, _ := newTestGoalService(t)
	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	created, err := svc.Create(context.Background(), alice, model.CreateGoalRequest{
		Name:          "Japan",
		TargetAmount:  4000,
		CurrentAmount: ptr(250.0),
		Category:      model.GoalVacation,
		Deadline:      stamp(deadline),
		Description:   ptr("Two weeks in spring"),
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.CurrentAmount != 250 || created.Category != model.GoalVacation {
		t.Errorf("unexpected goal %+v", created)
	}
	if created.Deadline == nil || !created.Deadline.Equal(deadline) {
		t.Errorf("expected deadline %v, got %v", deadline, created.Deadline)
	}
	if created.Description == nil || *created.Description != "Two weeks in spring" {
		t.Errorf("unexpected description %v", created.Description)
	}
}

func TestGoal_Validation(t *testing.T) {
	svc, alice, _ := newTestGoalService(t)

	tests := []struct {
		name string
		req  model.CreateGoalRequest
		want string
	}{
		{"zero target", model.CreateGoalRequest{Name: "x", TargetAmount: 0}, "target_amount must be greater than 0"},
		{"negative current", model.CreateGoalRequest{Name: "x", TargetAmount: 1, CurrentAmount: ptr(-1.0)}, "current_amount must be greater than or equal to 0"},
		{"bad category", model.CreateGoalRequest{Name: "x", TargetAmount: 1, Category: "yacht"}, "category must be one of"},
		{"long description", model.CreateGoalRequest{Name: "x", TargetAmount: 1, Description: ptr(strings.Repeat("d", 501))}, "description must be at most 500 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), alice, tt.req)
			assertErrorIs(t, err, ErrValidation)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestGoal_UpdateAndIsolation(t *testing.T) {
	svc, alice, bob := newTestGoalService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, model.CreateGoalRequest{Name: "Laptop", TargetAmount: 1500})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	updated, err := svc.Update(ctx, alice, created.ID, model.UpdateGoalRequest{CurrentAmount: ptr(300.0)})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.CurrentAmount != 300 || updated.Name != "Laptop" {
		t.Errorf("unexpected goal after update %+v", updated)
	}

	_, err = svc.Update(ctx, bob, created.ID, model.UpdateGoalRequest{CurrentAmount: ptr(0.0)})
	assertErrorIs(t, err, ErrGoalNotFound)

	bobGoals, err := svc.List(ctx, bob)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(bobGoals) != 0 {
		t.Errorf("expected no goals for bob, got %d", len(bobGoals))
	}

	if err := svc.Delete(ctx, alice, created.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	_, err = svc.Get(ctx, alice, created.ID)
	assertErrorIs(t, err, ErrGoalNotFound)
}

func TestGoal_ClearOptionalFields(t *testing.T) {
	svc, alice, _ := newTestGoalService(t)
	ctx := context.Background()
	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	created, err := svc.Create(ctx, alice, model.CreateGoalRequest{
		Name:         "Bike",
		TargetAmount: 800,
		Deadline:     stamp(deadline),
		Description:  ptr("Road bike"),
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	// Absent optional fields stay untouched.
	kept, err := svc.Update(ctx, alice, created.ID, model.UpdateGoalRequest{Name: ptr("Bike")})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if kept.Deadline == nil || kept.Description == nil {
		t.Fatalf("fields cleared without being sent: %+v", kept)
	}

	cleared, err := svc.Update(ctx, alice, created.ID, model.UpdateGoalRequest{
		Deadline:    model.Null[model.Timestamp](),
		Description: model.Null[string](),
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if cleared.Deadline != nil {
		t.Errorf("expected deadline cleared, got %v", cleared.Deadline)
	}
	if cleared.Description != nil {
		t.Errorf("expected description cleared, got %q", *cleared.Description)
	}

	newDeadline := deadline.AddDate(1, 0, 0)
	restored, err := svc.Update(ctx, alice, created.ID, model.UpdateGoalRequest{
		Deadline:    model.Some(model.Timestamp{Time: newDeadline}),
		Description: model.Some("Gravel bike"),
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if restored.Deadline == nil || !restored.Deadline.Equal(newDeadline) {
		t.Errorf("expected deadline %v, got %v", newDeadline, restored.Deadline)
	}
	if restored.Description == nil || *restored.Description != "Gravel bike" {
		t.Errorf("unexpected description %v", restored.Description)
	}

	_, err = svc.Update(ctx, alice, created.ID, model.UpdateGoalRequest{
		Description: model.Some(strings.Repeat("d", 501)),
	})
	assertErrorIs(t, err, ErrValidation)
}
