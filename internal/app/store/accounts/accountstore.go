// Package accountstore persists the three account variants. Each role lives
// in its own collection (users, admins, superadmins) but shares the
// models.Account shape; email uniqueness is enforced across all three.
package accountstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/inkboardhq/inkboard/internal/app/system/normalize"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrEmailTaken is returned when the email is already registered under
	// any account variant.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrSuperAdminExists is returned when a superadmin signup arrives while
	// one is already registered. The platform allows exactly one.
	ErrSuperAdminExists = errors.New("a superadmin already exists")

	// ErrAlreadySubscribed is returned by Subscribe for users who already
	// hold a subscription.
	ErrAlreadySubscribed = errors.New("user is already subscribed")
)

type Store struct {
	users       *mongo.Collection
	admins      *mongo.Collection
	superadmins *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		users:       db.Collection("users"),
		admins:      db.Collection("admins"),
		superadmins: db.Collection("superadmins"),
	}
}

func (s *Store) collection(role models.Role) *mongo.Collection {
	switch role {
	case models.RoleAdmin:
		return s.admins
	case models.RoleSuperAdmin:
		return s.superadmins
	default:
		return s.users
	}
}

// EmailExists reports whether the email is registered under any variant.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	email = normalize.Email(email)
	for _, c := range []*mongo.Collection{s.users, s.admins, s.superadmins} {
		err := c.FindOne(ctx, bson.M{"email": email}).Err()
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return false, err
		}
	}
	return false, nil
}

// CountSuperAdmins returns the number of registered superadmins.
func (s *Store) CountSuperAdmins(ctx context.Context) (int64, error) {
	return s.superadmins.CountDocuments(ctx, bson.M{})
}

// Create inserts a new account of the given role after normalizing fields.
// The Password field must already be hashed. Returns ErrEmailTaken if the
// email exists under any variant and ErrSuperAdminExists when a second
// superadmin signup is attempted.
func (s *Store) Create(ctx context.Context, a models.Account) (models.Account, error) {
	if !a.Role.Valid() {
		return models.Account{}, fmt.Errorf("invalid role %q", a.Role)
	}

	a.ID = primitive.NewObjectID()
	a.Email = normalize.Email(a.Email)
	a.Name = normalize.Name(a.Name)

	taken, err := s.EmailExists(ctx, a.Email)
	if err != nil {
		return models.Account{}, err
	}
	if taken {
		return models.Account{}, ErrEmailTaken
	}

	if a.Role == models.RoleSuperAdmin {
		n, err := s.CountSuperAdmins(ctx)
		if err != nil {
			return models.Account{}, err
		}
		if n >= 1 {
			return models.Account{}, ErrSuperAdminExists
		}
	}

	if a.Role == models.RoleUser {
		if a.Status == "" {
			a.Status = models.StatusActive
		}
		if a.PostIDs == nil {
			a.PostIDs = []primitive.ObjectID{}
		}
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.collection(a.Role).InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrEmailTaken
		}
		return models.Account{}, err
	}
	return a, nil
}

// FindByEmail looks up an account of the given role by case-insensitive
// email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) FindByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error) {
	var a models.Account
	err := s.collection(role).FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a)
	if err != nil {
		return nil, fmt.Errorf("find %s by email: %w", role, err)
	}
	a.Role = role
	return &a, nil
}

// FindByID loads an account of the given role by ObjectID.
func (s *Store) FindByID(ctx context.Context, role models.Role, id primitive.ObjectID) (*models.Account, error) {
	var a models.Account
	err := s.collection(role).FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		return nil, fmt.Errorf("find %s by id: %w", role, err)
	}
	a.Role = role
	return &a, nil
}

// FindUserByID loads a user-variant account. Missing users surface
// mongo.ErrNoDocuments in the error chain, which the access gates map to a
// not-found response.
func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return s.FindByID(ctx, models.RoleUser, id)
}

// UpdatePassword replaces the stored hash for the account.
func (s *Store) UpdatePassword(ctx context.Context, role models.Role, id primitive.ObjectID, hash string) error {
	res, err := s.collection(role).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": hash, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListUsers returns every user-variant account, omitting password hashes.
func (s *Store) ListUsers(ctx context.Context) ([]models.Account, error) {
	opts := options.Find().
		SetProjection(bson.M{"email": 1, "name": 1, "status": 1, "subscribed": 1, "posts": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Account
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Role = models.RoleUser
	}
	return out, nil
}

// ListAdmins returns every admin-variant account, omitting password hashes.
func (s *Store) ListAdmins(ctx context.Context) ([]models.Account, error) {
	opts := options.Find().
		SetProjection(bson.M{"email": 1, "name": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.admins.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Account
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Role = models.RoleAdmin
	}
	return out, nil
}

// SetUserStatus writes the given status on a user account. Returns
// mongo.ErrNoDocuments if the user does not exist.
func (s *Store) SetUserStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Subscribe marks the user as subscribed. Subscription is one-way; returns
// ErrAlreadySubscribed if the flag is already set, and mongo.ErrNoDocuments
// if there is no such user.
func (s *Store) Subscribe(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": id, "subscribed": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"subscribed": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount != 0 {
		return nil
	}
	// The guarded update misses for a missing user and for one already
	// subscribed; tell the two apart.
	err = s.users.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	return ErrAlreadySubscribed
}

// PushPost appends a post reference to the user's posts array.
func (s *Store) PushPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"posts": postID}, "$set": bson.M{"updated_at": time.Now()}},
	)
	return err
}

// PullPost removes a post reference from the user's posts array.
func (s *Store) PullPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"posts": postID}, "$set": bson.M{"updated_at": time.Now()}},
	)
	return err
}

// DeleteUser removes a user account document. Returns the number deleted.
func (s *Store) DeleteUser(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteAdmin removes an admin account document. Returns the number deleted.
func (s *Store) DeleteAdmin(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.admins.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
