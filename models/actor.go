package models

// ActorKind tags who is credited for a money movement. A movement is
// credited to a user or to a delegated worker, never both. Unknown means
// the underlying record carried no attribution of its own.
type ActorKind string

const (
	ActorUser    ActorKind = "user"
	ActorWorker  ActorKind = "worker"
	ActorUnknown ActorKind = "unknown"
)

type Actor struct {
	Kind ActorKind `bson:"kind" json:"kind"`
	ID   string    `bson:"id,omitempty" json:"id,omitempty"`
	Name string    `bson:"name,omitempty" json:"name,omitempty"`
}

func UserActor(id, name string) Actor {
	return Actor{Kind: ActorUser, ID: id, Name: name}
}

func WorkerActor(id, name string) Actor {
	return Actor{Kind: ActorWorker, ID: id, Name: name}
}

func UnknownActor() Actor {
	return Actor{Kind: ActorUnknown}
}

func (a Actor) IsUser() bool    { return a.Kind == ActorUser }
func (a Actor) IsWorker() bool  { return a.Kind == ActorWorker }
func (a Actor) IsUnknown() bool { return a.Kind != ActorUser && a.Kind != ActorWorker }
