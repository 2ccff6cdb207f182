package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/forum-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdatePrivileges(ctx context.Context, id int64, set bson.M) error
	UpgradeMembership(ctx context.Context, email string) error
	DeleteUser(ctx context.Context, id int64) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	store      *Store
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(store *Store) *MongoUserRepository {
	return &MongoUserRepository{store: store, collection: store.collection(store.names.Users)}
}

// GetUsers retrieves all users
func (r *MongoUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.collection, bson.D{})
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetUserByID retrieves a user by its integer id
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user unless the email is taken, assigning the next user id and the
// default badge and membership.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := r.GetUserByEmail(ctx, user.Email); err == nil {
		return ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	id, err := r.store.NextID(ctx, SeqUsers)
	if err != nil {
		return err
	}
	user.ID = id
	if len(user.Badge) == 0 {
		user.Badge = []string{models.DefaultBadge}
	}
	if user.Posts == nil {
		user.Posts = []int64{}
	}
	if user.MembershipStatus == "" {
		user.MembershipStatus = models.MembershipFree
	}

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// the unique email index catches a concurrent insert that passed the lookup
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ObjectID = oid
	}
	return nil
}

// UpdatePrivileges sets the given fields on the user with the given id
func (r *MongoUserRepository) UpdatePrivileges(ctx context.Context, id int64, set bson.M) error {
	if len(set) == 0 {
		return fmt.Errorf("no privilege fields to update")
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpgradeMembership moves the user to the paid tier and awards the matching badge
func (r *MongoUserRepository) UpgradeMembership(ctx context.Context, email string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set":      bson.M{"membershipStatus": models.MembershipGold},
		"$addToSet": bson.M{"badge": models.MembershipGold},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser deletes a user by id
func (r *MongoUserRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
