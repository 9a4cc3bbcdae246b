package models

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReactions_Like(t *testing.T) {
	var r Reactions
	account := primitive.NewObjectID()

	if err := r.Like(account); err != nil {
		t.Fatalf("Like failed: %v", err)
	}

	if r.Likes.Total != 1 {
		t.Errorf("likes total: got %d, want 1", r.Likes.Total)
	}
	if !r.Likes.Contains(account) {
		t.Error("expected account in like set")
	}
	if r.Dislikes.Total != 0 {
		t.Errorf("dislikes total: got %d, want 0", r.Dislikes.Total)
	}
}

func TestReactions_Like_Repeat(t *testing.T) {
	var r Reactions
	account := primitive.NewObjectID()

	if err := r.Like(account); err != nil {
		t.Fatalf("first Like failed: %v", err)
	}
	err := r.Like(account)
	if !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	// State untouched after the rejected repeat
	if r.Likes.Total != 1 || len(r.Likes.By) != 1 {
		t.Errorf("like state changed: total=%d len=%d", r.Likes.Total, len(r.Likes.By))
	}
}

func TestReactions_Dislike_Repeat(t *testing.T) {
	var r Reactions
	account := primitive.NewObjectID()

	if err := r.Dislike(account); err != nil {
		t.Fatalf("first Dislike failed: %v", err)
	}
	err := r.Dislike(account)
	if !errors.Is(err, ErrAlreadyDisliked) {
		t.Fatalf("expected ErrAlreadyDisliked, got %v", err)
	}
	if r.Dislikes.Total != 1 {
		t.Errorf("dislikes total: got %d, want 1", r.Dislikes.Total)
	}
}

func TestReactions_LikeWithdrawsDislike(t *testing.T) {
	var r Reactions
	account := primitive.NewObjectID()
	other := primitive.NewObjectID()

	if err := r.Dislike(account); err != nil {
		t.Fatalf("Dislike failed: %v", err)
	}
	if err := r.Dislike(other); err != nil {
		t.Fatalf("Dislike(other) failed: %v", err)
	}
	if err := r.Like(account); err != nil {
		t.Fatalf("Like after Dislike failed: %v", err)
	}

	if r.Likes.Total != 1 || !r.Likes.Contains(account) {
		t.Errorf("like set wrong: total=%d", r.Likes.Total)
	}
	if r.Dislikes.Total != 1 || r.Dislikes.Contains(account) {
		t.Errorf("dislike not withdrawn: total=%d", r.Dislikes.Total)
	}
	if !r.Dislikes.Contains(other) {
		t.Error("unrelated dislike was removed")
	}
}

func TestReactions_DislikeWithdrawsLike(t *testing.T) {
	var r Reactions
	account := primitive.NewObjectID()

	if err := r.Like(account); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if err := r.Dislike(account); err != nil {
		t.Fatalf("Dislike after Like failed: %v", err)
	}

	if r.Likes.Total != 0 || r.Likes.Contains(account) {
		t.Errorf("like not withdrawn: total=%d", r.Likes.Total)
	}
	if r.Dislikes.Total != 1 || !r.Dislikes.Contains(account) {
		t.Errorf("dislike set wrong: total=%d", r.Dislikes.Total)
	}
}

func TestReactions_TotalsTrackSets(t *testing.T) {
	var r Reactions

	for i := 0; i < 5; i++ {
		if err := r.Like(primitive.NewObjectID()); err != nil {
			t.Fatalf("Like %d failed: %v", i, err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := r.Dislike(primitive.NewObjectID()); err != nil {
			t.Fatalf("Dislike %d failed: %v", i, err)
		}
	}

	if r.Likes.Total != len(r.Likes.By) {
		t.Errorf("likes: total %d != len(by) %d", r.Likes.Total, len(r.Likes.By))
	}
	if r.Dislikes.Total != len(r.Dislikes.By) {
		t.Errorf("dislikes: total %d != len(by) %d", r.Dislikes.Total, len(r.Dislikes.By))
	}
}
