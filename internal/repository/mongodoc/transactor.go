package mongodoc

import (
	"context"

	domainRepo "docconnect/internal/domain/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

type transactor struct {
	client *mongo.Client
}

// NewTransactor needs a replica set or sharded cluster; standalone servers reject transactions.
func NewTransactor(client *mongo.Client) domainRepo.Transactor {
	return &transactor{client: client}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
