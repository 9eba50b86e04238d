package notation

import (
	"context"

	"google.golang.org/protobuf/types/known/wrapperspb"

	notationRPC "pgn4_backend/microservices/proto"
)

func Normalize(ctx context.Context, text string, notationGRPC notationRPC.NotationServiceClient) (string, error) {
	resp, err := notationGRPC.Normalize(ctx, wrapperspb.String(text))
	if err != nil {
		return "", err
	}
	return resp.GetValue(), nil
}

func Inspect(ctx context.Context, text string, notationGRPC notationRPC.NotationServiceClient) (map[string]interface{}, error) {
	resp, err := notationGRPC.Inspect(ctx, wrapperspb.String(text))
	if err != nil {
		return nil, err
	}
	return resp.AsMap(), nil
}
