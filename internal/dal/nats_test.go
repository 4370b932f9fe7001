package dal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

func startNATS(t *testing.T) *nats.Conn {
	t.Helper()

	ns, err := server.NewServer(&server.Options{Port: -1, NoSigs: true, NoLog: true})
	if err != nil {
		t.Fatalf("failed to create embedded NATS server: %v", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(10 * time.Second) {
		t.Fatal("embedded NATS server failed to start")
	}
	t.Cleanup(ns.Shutdown)

	nc, err := nats.Connect(ns.ClientURL())
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(nc.Close)
	return nc
}

func TestNATSDALRoundTrip(t *testing.T) {
	nc := startNATS(t)

	roster := []models.Player{
		{Name: "SirAlexius", House: "Bauhinia", Tiers: []models.TierLabel{"HT1"}, Points: 60, Rank: 1},
		{Name: "Other", Tiers: []models.TierLabel{"LT5"}, Points: 1, Rank: 2},
	}
	sub, err := RespondRoster(nc, "roster.get", func() []models.Player { return roster })
	if err != nil {
		t.Fatalf("RespondRoster() failed: %v", err)
	}
	defer sub.Unsubscribe()
	nc.Flush()

	dal := NewNATSDALFromConn(nc, "roster.get")
	players, err := dal.LoadPlayers(context.Background())
	if err != nil {
		t.Fatalf("LoadPlayers() failed: %v", err)
	}

	if len(players) != 2 || players[0].Name != "SirAlexius" || players[1].Tiers[0] != "LT5" {
		t.Errorf("unexpected roster: %+v", players)
	}
	if players[0].Points != 0 || players[0].Rank != 0 {
		t.Error("derived fields from the wire should be discarded")
	}
	if dal.Name() != "nats:roster.get" {
		t.Errorf("Name() = %q", dal.Name())
	}
}

func TestNATSDALNoResponder(t *testing.T) {
	nc := startNATS(t)
	dal := NewNATSDALFromConn(nc, "nobody.home")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := dal.LoadPlayers(ctx); err == nil {
		t.Error("expected error with no responders")
	}
}

func TestNATSDALBadReply(t *testing.T) {
	nc := startNATS(t)

	sub, err := nc.Subscribe("roster.bad", func(msg *nats.Msg) {
		msg.Respond([]byte("{not json"))
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()
	nc.Flush()

	dal := NewNATSDALFromConn(nc, "roster.bad")
	if _, err := dal.LoadPlayers(context.Background()); !errors.Is(err, ErrInvalidRoster) {
		t.Errorf("expected ErrInvalidRoster, got %v", err)
	}
}

func TestRespondRosterEncodesCurrentRoster(t *testing.T) {
	nc := startNATS(t)

	var mu sync.Mutex
	current := []models.Player{{Name: "v1"}}
	sub, err := RespondRoster(nc, "roster.live", func() []models.Player {
		mu.Lock()
		defer mu.Unlock()
		return current
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()
	nc.Flush()

	mu.Lock()
	current = []models.Player{{Name: "v2"}, {Name: "v3"}}
	mu.Unlock()

	msg, err := nc.Request("roster.live", nil, 2*time.Second)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var got []models.Player
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "v2" {
		t.Errorf("responder should read the roster at request time, got %+v", got)
	}
}
