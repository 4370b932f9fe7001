package fuzz

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Billy-Davies-2/tierboard/internal/board"
	"github.com/Billy-Davies-2/tierboard/internal/dal"
	grpcserver "github.com/Billy-Davies-2/tierboard/internal/grpc"
)

// FuzzGRPCGetPlayer fuzzes the gRPC GetPlayer endpoint
func FuzzGRPCGetPlayer(f *testing.F) {
	f.Add("SirAlexius")
	f.Add("")
	f.Add("siralexius")

	f.Fuzz(func(t *testing.T, name string) {
		b := board.New(dal.NewMemoryDAL())
		if err := b.Reload(context.Background()); err != nil {
			t.Fatal(err)
		}
		server := grpcserver.NewServer(b)

		resp, err := server.GetPlayer(context.Background(), &grpcserver.GetPlayerRequest{Name: name})
		if err != nil {
			if status.Code(err) != codes.NotFound {
				t.Fatalf("unexpected code %v", status.Code(err))
			}
			return
		}
		if resp.Profile.Name != name {
			t.Fatalf("asked for %q, got %q", name, resp.Profile.Name)
		}
	})
}

// FuzzGRPCSearchPlayers fuzzes the gRPC SearchPlayers endpoint
func FuzzGRPCSearchPlayers(f *testing.F) {
	f.Add("sir")
	f.Add("")

	f.Fuzz(func(t *testing.T, query string) {
		b := board.New(dal.NewMemoryDAL())
		if err := b.Reload(context.Background()); err != nil {
			t.Fatal(err)
		}

		resp, err := grpcserver.NewServer(b).SearchPlayers(context.Background(), &grpcserver.SearchPlayersRequest{Query: query})
		if err != nil {
			t.Fatal(err)
		}
		if query == "" && len(resp.Players) != 0 {
			t.Fatal("empty query should match nothing")
		}
	})
}
