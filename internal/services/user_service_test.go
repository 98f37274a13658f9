package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// racingUserRepo injects a purchase credit at the moment the
// congratulations flag is written, modelling a credit landing concurrently
// with the acknowledgment.
type racingUserRepo struct {
	*fakeUserRepo
	racer primitive.ObjectID
}

func (r *racingUserRepo) SetCongratsSeen(ctx context.Context, userID primitive.ObjectID) error {
	if err := r.fakeUserRepo.IncrementEntries(ctx, r.racer, 20, 2); err != nil {
		return err
	}
	return r.fakeUserRepo.SetCongratsSeen(ctx, userID)
}

func TestMarkCongratsSeenKeepsConcurrentCredits(t *testing.T) {
	base := newFakeUserRepo()
	alice := addParticipant(t, base, "alice", 1)
	svc := NewUserService(&racingUserRepo{fakeUserRepo: base, racer: alice.ID})

	if err := svc.MarkCongratsSeen(context.Background(), alice.ID); err != nil {
		t.Fatalf("MarkCongratsSeen: %v", err)
	}

	got, _ := base.FindByID(context.Background(), alice.ID)
	if !got.SeenCongrats {
		t.Error("congratulations flag not set")
	}
	if got.TotalEntries != 21 || got.TotalShirtsPurchased != 2 {
		t.Errorf("concurrent purchase credit lost: entries=%d shirts=%d (want 21/2)",
			got.TotalEntries, got.TotalShirtsPurchased)
	}
}

func TestMarkCongratsSeenUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	if err := svc.MarkCongratsSeen(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
