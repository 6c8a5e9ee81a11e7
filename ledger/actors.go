package ledger

import (
	"context"

	"backend/models"
)

// resolveActor decides who is credited for a money movement. A store
// account always acts through one of its workers; anyone else is credited
// directly. Returns the acting user as well, for the record's top-level
// created-by fields.
func (l *Ledger) resolveActor(ctx context.Context, actingUserID, actingRole, workerID string) (models.Actor, *models.User, error) {
	user, err := l.Actors.FindUser(ctx, actingUserID)
	if err != nil {
		return models.Actor{}, nil, err
	}
	if user == nil {
		return models.Actor{}, nil, &NotFoundError{Entity: "user", ID: actingUserID}
	}

	if actingRole != models.RoleStore {
		return models.UserActor(user.ID.Hex(), user.FullName()), user, nil
	}

	if workerID == "" {
		return models.Actor{}, nil, validationf("worker is required for a store account")
	}
	storeID, err := l.Actors.StoreOfUser(ctx, actingUserID)
	if err != nil {
		return models.Actor{}, nil, err
	}
	if storeID == "" {
		return models.Actor{}, nil, validationf("acting account is not linked to a store")
	}
	worker, err := l.Actors.FindActiveWorker(ctx, workerID, storeID)
	if err != nil {
		return models.Actor{}, nil, err
	}
	if worker == nil {
		return models.Actor{}, nil, validationf("worker %s is not an active worker of the store", workerID)
	}
	return models.WorkerActor(worker.ID.Hex(), worker.FullName()), user, nil
}
