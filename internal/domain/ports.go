package domain

import "context"

// ChatModel starts conversations with the generative model.
type ChatModel interface {
	StartChat(ctx context.Context) (ChatSession, error)
}

// ChatSession is one live conversation. Each SendMessage sees the
// previous turns of the same session.
type ChatSession interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Document is a stored record with its id.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore persists project documents with merge-write semantics:
// fields absent from an Upsert are preserved.
type DocumentStore interface {
	Upsert(ctx context.Context, collection, id string, fields map[string]any) error
	Get(ctx context.Context, collection, id string) (*Document, error)
	ListByField(ctx context.Context, collection, field string, value any, limit int) ([]*Document, error)
	Ping(ctx context.Context) error
}
