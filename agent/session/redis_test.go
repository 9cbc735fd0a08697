package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

func TestUpstashRedisStoreRedisKey(t *testing.T) {
	t.Parallel()

	store, err := NewUpstashRedisStore(UpstashRedisConfig{
		URL:   "http://localhost",
		Token: "token",
	})
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	got, err := store.redisKey("abc")
	if err != nil {
		t.Fatalf("redisKey() error = %v", err)
	}
	if got != "pz:session:abc" {
		t.Fatalf("redisKey() = %q, want %q", got, "pz:session:abc")
	}
}

func TestUpstashRedisStoreRedisKeyEmptyUser(t *testing.T) {
	t.Parallel()

	store, err := NewUpstashRedisStore(UpstashRedisConfig{
		URL:   "http://localhost",
		Token: "token",
	})
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}
	if _, err := store.redisKey("   "); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("redisKey() error = %v, want ErrInvalidUser", err)
	}
}

func TestUpstashRedisStoreAppendIssuesGetThenSet(t *testing.T) {
	t.Parallel()

	var commands [][]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var cmd []any
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			t.Errorf("decode command: %v", err)
			return
		}
		commands = append(commands, cmd)
		if cmd[0] == "GET" {
			fmt.Fprint(w, `{"result":null}`)
			return
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{
			URL:   server.URL,
			Token: "token",
		},
		WithHTTPClient(server.Client()),
		WithTTL(0),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	tr := contractx.Turn{Role: contractx.RoleUser, Content: "hi", Timestamp: time.Now().UTC()}
	if err := store.Append(context.Background(), "user-1", tr); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if len(commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(commands))
	}
	if commands[0][0] != "GET" || commands[0][1] != "pz:session:user-1" {
		t.Fatalf("unexpected first command: %#v", commands[0])
	}
	if commands[1][0] != "SET" || commands[1][1] != "pz:session:user-1" {
		t.Fatalf("unexpected second command: %#v", commands[1])
	}

	var stored []contractx.Turn
	if err := json.Unmarshal([]byte(commands[1][2].(string)), &stored); err != nil {
		t.Fatalf("unmarshal stored payload: %v", err)
	}
	if len(stored) != 1 || stored[0].Content != "hi" {
		t.Fatalf("unexpected stored turns: %+v", stored)
	}
}

func TestUpstashRedisStoreAppendTrimsAtCap(t *testing.T) {
	t.Parallel()

	existing := make([]contractx.Turn, Cap)
	for i := range existing {
		existing[i] = contractx.Turn{Role: contractx.RoleUser, Content: fmt.Sprintf("old-%d", i)}
	}
	payload, err := json.Marshal(existing)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	encoded, err := json.Marshal(string(payload))
	if err != nil {
		t.Fatalf("marshal encoded seed: %v", err)
	}

	var setPayload string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var cmd []any
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			t.Errorf("decode command: %v", err)
			return
		}
		if cmd[0] == "GET" {
			fmt.Fprintf(w, `{"result":%s}`, encoded)
			return
		}
		setPayload = cmd[2].(string)
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{
			URL:   server.URL,
			Token: "token",
		},
		WithHTTPClient(server.Client()),
		WithTTL(0),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	tr := contractx.Turn{Role: contractx.RoleUser, Content: "newest"}
	if err := store.Append(context.Background(), "user-1", tr); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	var stored []contractx.Turn
	if err := json.Unmarshal([]byte(setPayload), &stored); err != nil {
		t.Fatalf("unmarshal stored payload: %v", err)
	}
	if len(stored) != Cap {
		t.Fatalf("len(stored) = %d, want %d", len(stored), Cap)
	}
	if stored[0].Content != "old-1" {
		t.Fatalf("oldest turn not evicted, stored[0] = %q", stored[0].Content)
	}
	if stored[Cap-1].Content != "newest" {
		t.Fatalf("stored[%d] = %q, want newest", Cap-1, stored[Cap-1].Content)
	}
}

func TestUpstashRedisStoreClearIssuesDel(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
			return
		}
		fmt.Fprint(w, `{"result":1}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{
			URL:   server.URL,
			Token: "token",
		},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	if err := store.Clear(context.Background(), "user-3"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if gotCommand[0] != "DEL" || gotCommand[1] != "pz:session:user-3" {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
}
