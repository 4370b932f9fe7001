package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls the leaderboard service using the JSON codec
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *Client) GetLeaderboard(ctx context.Context, in *GetLeaderboardRequest, opts ...grpc.CallOption) (*GetLeaderboardResponse, error) {
	out := new(GetLeaderboardResponse)
	if err := c.invoke(ctx, "GetLeaderboard", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTierList(ctx context.Context, in *GetTierListRequest, opts ...grpc.CallOption) (*GetTierListResponse, error) {
	out := new(GetTierListResponse)
	if err := c.invoke(ctx, "GetTierList", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPlayer(ctx context.Context, in *GetPlayerRequest, opts ...grpc.CallOption) (*GetPlayerResponse, error) {
	out := new(GetPlayerResponse)
	if err := c.invoke(ctx, "GetPlayer", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchPlayers(ctx context.Context, in *SearchPlayersRequest, opts ...grpc.CallOption) (*SearchPlayersResponse, error) {
	out := new(SearchPlayersResponse)
	if err := c.invoke(ctx, "SearchPlayers", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
