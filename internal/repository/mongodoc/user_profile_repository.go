package mongodoc

import (
	"context"
	"errors"
	"time"

	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userProfileRepository struct {
	collection *mongo.Collection
}

func NewUserProfileRepository(db *mongo.Database) domainRepo.UserProfileRepository {
	return &userProfileRepository{collection: db.Collection(UserProfilesCollection)}
}

func (r *userProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error) {
	var doc userProfileDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *userProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.UserProfile, error) {
	if len(ids) == 0 {
		return []entity.UserProfile{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}})
}

func (r *userProfileRepository) FindByRole(ctx context.Context, role entity.Role, status entity.VerificationStatus) ([]entity.UserProfile, error) {
	filter := bson.M{"role": string(role)}
	if status != "" {
		filter["verification_status"] = string(status)
	}
	return r.find(ctx, filter)
}

func (r *userProfileRepository) Merge(ctx context.Context, id uuid.UUID, fields domainRepo.Fields) error {
	if len(fields) == 0 {
		return nil
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		mergeUpdate(fields, time.Now()),
		options.Update().SetUpsert(true),
	)
	return translate(err)
}

func (r *userProfileRepository) find(ctx context.Context, filter bson.M) ([]entity.UserProfile, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userProfileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	profiles := make([]entity.UserProfile, 0, len(docs))
	for i := range docs {
		profile, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}
