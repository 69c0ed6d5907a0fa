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

type doctorProfileRepository struct {
	collection *mongo.Collection
}

func NewDoctorProfileRepository(db *mongo.Database) domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{collection: db.Collection(DoctorProfilesCollection)}
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var doc doctorProfileDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *doctorProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.DoctorProfile, error) {
	if len(userIDs) == 0 {
		return []entity.DoctorProfile{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": idStrings(userIDs)}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []doctorProfileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	profiles := make([]entity.DoctorProfile, 0, len(docs))
	for i := range docs {
		profile, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Merge(ctx context.Context, userID uuid.UUID, fields domainRepo.Fields) error {
	if len(fields) == 0 {
		return nil
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		mergeUpdate(fields, time.Now()),
		options.Update().SetUpsert(true),
	)
	return translate(err)
}
