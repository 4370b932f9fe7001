package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Billy-Davies-2/tierboard/internal/board"
	"github.com/Billy-Davies-2/tierboard/internal/logger"
	"github.com/Billy-Davies-2/tierboard/internal/models"
	"github.com/Billy-Davies-2/tierboard/internal/render"
)

const ServiceName = "tierboard.LeaderboardService"

// Board is the read side of the leaderboard the service exposes.
type Board interface {
	Ready() bool
	Version() string
	Leaderboard() []models.Player
	TierList(category models.Category) models.TierList
	Profile(name string) (models.Player, error)
	Search(query string) []models.Player
}

// LeaderboardServiceServer is the server API for the leaderboard service.
type LeaderboardServiceServer interface {
	GetLeaderboard(context.Context, *GetLeaderboardRequest) (*GetLeaderboardResponse, error)
	GetTierList(context.Context, *GetTierListRequest) (*GetTierListResponse, error)
	GetPlayer(context.Context, *GetPlayerRequest) (*GetPlayerResponse, error)
	SearchPlayers(context.Context, *SearchPlayersRequest) (*SearchPlayersResponse, error)
}

// Server implements LeaderboardServiceServer over a Board
type Server struct {
	board Board
}

// NewServer creates a new gRPC server
func NewServer(b Board) *Server {
	return &Server{board: b}
}

// Register attaches the service to s.
func Register(s grpc.ServiceRegistrar, srv LeaderboardServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func (s *Server) ready() error {
	if !s.board.Ready() {
		return status.Error(codes.Unavailable, board.ErrNotLoaded.Error())
	}
	return nil
}

// GetLeaderboard returns every player in rank order
func (s *Server) GetLeaderboard(ctx context.Context, req *GetLeaderboardRequest) (*GetLeaderboardResponse, error) {
	logger.Debug("gRPC: Getting leaderboard")
	if err := s.ready(); err != nil {
		return nil, err
	}
	return &GetLeaderboardResponse{
		Version: s.board.Version(),
		Players: s.board.Leaderboard(),
	}, nil
}

// GetTierList returns the five buckets for a category
func (s *Server) GetTierList(ctx context.Context, req *GetTierListRequest) (*GetTierListResponse, error) {
	logger.Debug("gRPC: Getting tier list", "category", req.Category)
	if err := s.ready(); err != nil {
		return nil, err
	}
	return &GetTierListResponse{TierList: s.board.TierList(req.Category)}, nil
}

// GetPlayer returns a single player's profile
func (s *Server) GetPlayer(ctx context.Context, req *GetPlayerRequest) (*GetPlayerResponse, error) {
	p, err := s.board.Profile(req.Name)
	switch {
	case errors.Is(err, board.ErrPlayerNotFound):
		return nil, status.Error(codes.NotFound, board.ErrPlayerNotFound.Error())
	case errors.Is(err, board.ErrNotLoaded):
		return nil, status.Error(codes.Unavailable, board.ErrNotLoaded.Error())
	case err != nil:
		logger.Error("gRPC: Failed to get player", "error", err, "name", req.Name)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &GetPlayerResponse{Profile: render.NewProfile(p)}, nil
}

// SearchPlayers returns players whose name contains the query
func (s *Server) SearchPlayers(ctx context.Context, req *SearchPlayersRequest) (*SearchPlayersResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return &SearchPlayersResponse{Players: s.board.Search(req.Query)}, nil
}

func unaryHandler[Req any, Resp any](method string, call func(LeaderboardServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LeaderboardServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LeaderboardServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the leaderboard service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LeaderboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("GetLeaderboard", LeaderboardServiceServer.GetLeaderboard),
		unaryHandler("GetTierList", LeaderboardServiceServer.GetTierList),
		unaryHandler("GetPlayer", LeaderboardServiceServer.GetPlayer),
		unaryHandler("SearchPlayers", LeaderboardServiceServer.SearchPlayers),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tierboard.proto",
}
