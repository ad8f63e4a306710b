package nakama

import (
	"context"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"partition/internal/domain"
	"partition/internal/ports"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type sentMessage struct {
	opCode    int64
	data      []byte
	presences []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	messages []sentMessage
	labels   []string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.messages = append(md.messages, sentMessage{opCode: opCode, data: append([]byte(nil), data...), presences: presences})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return md.BroadcastMessage(opCode, data, presences, sender, reliable)
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labels = append(md.labels, label)
	return nil
}

func (md *mockDispatcher) last(opCode int64) (sentMessage, bool) {
	for i := len(md.messages) - 1; i >= 0; i-- {
		if md.messages[i].opCode == opCode {
			return md.messages[i], true
		}
	}
	return sentMessage{}, false
}

// fakePresence overrides only what the handler reads; other methods panic if called.
type fakePresence struct {
	runtime.Presence
	userID string
}

func (p fakePresence) GetUserId() string { return p.userID }

type fakeMatchData struct {
	runtime.MatchData
	userID string
	opCode int64
	data   []byte
}

func (m fakeMatchData) GetUserId() string { return m.userID }
func (m fakeMatchData) GetOpCode() int64  { return m.opCode }
func (m fakeMatchData) GetData() []byte   { return m.data }

type multiUpdateCall struct {
	storageWrites []*runtime.StorageWrite
	walletUpdates []*runtime.WalletUpdate
}

type fakeNakama struct {
	runtime.NakamaModule

	matches   []*api.Match
	listQuery string
	listErr   error

	createdModule string
	createdParams map[string]interface{}
	createErr     error

	multiUpdates   []multiUpdateCall
	multiUpdateErr error

	profileUpdates []string
}

func (f *fakeNakama) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize *int, maxSize *int, query string) ([]*api.Match, error) {
	f.listQuery = query
	return f.matches, f.listErr
}

func (f *fakeNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	f.createdModule = module
	f.createdParams = params
	if f.createErr != nil {
		return "", f.createErr
	}
	return "match-new", nil
}

func (f *fakeNakama) MultiUpdate(ctx context.Context, accountUpdates []*runtime.AccountUpdate, storageWrites []*runtime.StorageWrite, storageDeletes []*runtime.StorageDelete, walletUpdates []*runtime.WalletUpdate, updateLedger bool) ([]*api.StorageObjectAck, []*runtime.WalletUpdateResult, error) {
	f.multiUpdates = append(f.multiUpdates, multiUpdateCall{storageWrites: storageWrites, walletUpdates: walletUpdates})
	return nil, nil, f.multiUpdateErr
}

func (f *fakeNakama) AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error {
	f.profileUpdates = append(f.profileUpdates, displayName)
	return nil
}

type recordingResults struct {
	results []ports.GameResult
	err     error
}

func (r *recordingResults) RecordResult(ctx context.Context, result ports.GameResult) error {
	r.results = append(r.results, result)
	return r.err
}

func decodeFields(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	msg := &structpb.Struct{}
	if err := protojson.Unmarshal(data, msg); err != nil {
		t.Fatalf("payload is not a struct: %v (%s)", err, data)
	}
	return msg.AsMap()
}

func card(id string, lane, value, cost int) domain.Card {
	return domain.Card{ID: id, Title: "Test " + id, Value: value, Cost: cost, Lane: lane}
}
