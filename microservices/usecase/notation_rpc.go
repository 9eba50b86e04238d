package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"pgn4_backend/internal/domain/pgn4"
	notationRPC "pgn4_backend/microservices/proto"
)

type NotationUseCase struct {
	log *zap.SugaredLogger
	notationRPC.UnimplementedNotationServiceServer
}

func NewNotationUseCase(log *zap.SugaredLogger) *NotationUseCase {
	return &NotationUseCase{log: log}
}

func (n *NotationUseCase) Normalize(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	doc, err := n.parse(in.GetValue())
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(doc.String()), nil
}

func (n *NotationUseCase) Inspect(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	doc, err := n.parse(in.GetValue())
	if err != nil {
		return nil, err
	}

	tags := make([]interface{}, 0, len(doc.Tags))
	for _, t := range doc.Tags {
		tags = append(tags, map[string]interface{}{"name": t.Name, "value": t.Value})
	}

	fields := map[string]interface{}{
		"tags":      tags,
		"ply_count": doc.PlyCount(),
		"main_line": MainLine(doc),
	}
	if variant, err := doc.Variant(); err == nil {
		fields["variant"] = variant.Mode
	}

	info, err := structpb.NewStruct(fields)
	if err != nil {
		n.log.Errorw("inspect result not encodable", "error", err)
		return nil, status.Error(codes.Internal, "inspect result not encodable")
	}
	return info, nil
}

func (n *NotationUseCase) parse(text string) (*pgn4.PGN4, error) {
	doc, err := pgn4.Parse(text)
	if err == nil {
		return doc, nil
	}

	var perr *pgn4.ParseError
	if errors.As(err, &perr) {
		n.log.Infow("rejected notation", "line", perr.Line, "column", perr.Column, "error", perr.Err)
	}
	return nil, status.Error(codes.InvalidArgument, err.Error())
}

// MainLine lists the main line quarter-turns without descriptions or alternatives.
func MainLine(doc *pgn4.PGN4) []interface{} {
	moves := make([]interface{}, 0, doc.PlyCount())
	for _, turn := range doc.Turns {
		for _, q := range turn.Quarters {
			bare := pgn4.QuarterTurn{
				Main:           q.Main,
				Modifier:       q.Modifier,
				ExtraStalemate: q.ExtraStalemate,
			}
			moves = append(moves, bare.String())
		}
	}
	return moves
}
