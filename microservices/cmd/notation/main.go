package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"pgn4_backend/internal/bootstrap"
	notationRPC "pgn4_backend/microservices/proto"
	"pgn4_backend/microservices/usecase"
)

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		logger.Fatalw("cant listen port", "port", cfg.GrpcPort, "error", err)
	}

	server := grpc.NewServer()
	notationRPC.RegisterNotationServiceServer(server, usecase.NewNotationUseCase(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		server.GracefulStop()
	}()

	logger.Infof("starting notation server at :%s", cfg.GrpcPort)
	if err := server.Serve(lis); err != nil {
		logger.Fatalw("notation server stopped", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
