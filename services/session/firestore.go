package session

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const sessionCollection = "sessions"

// FirestoreStore keeps one document per device; every key is a field of it.
type FirestoreStore struct {
	client *firestore.Client
	doc    *firestore.DocumentRef
}

var _ KeyValueStore = (*FirestoreStore)(nil)

func NewFirestoreStore(client *firestore.Client, deviceID string) *FirestoreStore {
	return &FirestoreStore{
		client: client,
		doc:    client.Collection(sessionCollection).Doc(deviceID),
	}
}

func (f *FirestoreStore) Get(ctx context.Context, key string) (string, bool, error) {
	snap, err := f.doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read session document: %w", err)
	}
	data := snap.Data()
	raw, ok := data[key]
	if !ok {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("session field %q is %T, not a string", key, raw)
	}
	return value, true, nil
}

func (f *FirestoreStore) Set(ctx context.Context, key, value string) error {
	_, err := f.doc.Set(ctx, map[string]any{key: value}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("write session field %q: %w", key, err)
	}
	return nil
}

func (f *FirestoreStore) Remove(ctx context.Context, key string) error {
	_, err := f.doc.Update(ctx, []firestore.Update{{Path: key, Value: firestore.Delete}})
	if status.Code(err) == codes.NotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete session field %q: %w", key, err)
	}
	return nil
}

func (f *FirestoreStore) Close() error {
	return f.client.Close()
}
