package notation

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pgn4_backend/internal/bootstrap"
	"pgn4_backend/internal/domain/game"
	notationUC "pgn4_backend/internal/usecase/notation"
	notationRPC "pgn4_backend/microservices/proto"
)

type NormalizeResponse struct {
	Notation string `json:"notation"`
}

type NotationHandler struct {
	cfg          bootstrap.Config
	log          *zap.SugaredLogger
	notationGRPC notationRPC.NotationServiceClient
}

func NewNotationHandler(cfg bootstrap.Config, log *zap.SugaredLogger, notation notationRPC.NotationServiceClient) *NotationHandler {
	return &NotationHandler{
		cfg:          cfg,
		log:          log,
		notationGRPC: notation,
	}
}

func (n *NotationHandler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	var req game.GameCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(n.log, w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	normalized, err := notationUC.Normalize(r.Context(), req.Notation, n.notationGRPC)
	if err != nil {
		n.writeRPCError(w, err)
		return
	}

	writeJSON(n.log, w, http.StatusOK, NormalizeResponse{Notation: normalized})
}

func (n *NotationHandler) HandleInspect(w http.ResponseWriter, r *http.Request) {
	var req game.GameCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(n.log, w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	info, err := notationUC.Inspect(r.Context(), req.Notation, n.notationGRPC)
	if err != nil {
		n.writeRPCError(w, err)
		return
	}

	writeJSON(n.log, w, http.StatusOK, info)
}

func (n *NotationHandler) writeRPCError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	if st.Code() == codes.InvalidArgument {
		writeJSONError(n.log, w, http.StatusBadRequest, st.Message())
		return
	}
	n.log.Errorf("notation service call failed: %v", err)
	writeJSONError(n.log, w, http.StatusBadGateway, "Notation service unavailable")
}

func writeJSON(log *zap.SugaredLogger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("writeJSON encode error: %v", err)
	}
}

func writeJSONError(log *zap.SugaredLogger, w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	log.Debugf("writeJSONError: %s", msg)
}
