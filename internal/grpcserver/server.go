// Package grpcserver implements the jobtracker.v1.Tracker gRPC service.
//
// It delegates all business logic to tracker.Service and handles only the
// gRPC transport concerns: error mapping and conversion between domain
// values and google.protobuf.Struct messages.
package grpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"jobmate/job-tracker/internal/ranking"
	"jobmate/job-tracker/internal/tracker"
)

// Server implements TrackerServer.
type Server struct {
	svc *tracker.Service
}

// NewServer constructs a gRPC Server backed by the given tracker.Service.
func NewServer(svc *tracker.Service) *Server {
	return &Server{svc: svc}
}

// New returns a grpc.Server with the tracker service and a zap logging
// interceptor installed.
func New(svc *tracker.Service, log *zap.Logger) *grpc.Server {
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(LoggingInterceptor(log)))
	Register(gs, NewServer(svc))
	return gs
}

// ─── RPC implementations ─────────────────────────────────────────────────────

// ListJobs returns the filtered, sorted catalog as {"jobs": [...]}.
func (s *Server) ListJobs(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := ranking.Filters{
		Keyword:     str(req, "keyword"),
		Location:    str(req, "location"),
		Mode:        str(req, "mode"),
		Experience:  str(req, "experience"),
		Source:      str(req, "source"),
		Status:      str(req, "status"),
		Sort:        ranking.SortKey(str(req, "sort")),
		OnlyMatches: req.GetFields()["onlyMatches"].GetBoolValue(),
	}
	jobs, err := s.svc.ListJobs(f)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return toStruct(map[string]any{"jobs": jobs})
}

// SetStatus records {"jobId", "status"}.
func (s *Server) SetStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := jobID(req)
	if err != nil {
		return nil, err
	}
	st := str(req, "status")
	change, err := s.svc.SetStatus(ctx, id, st)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return toStruct(map[string]any{"jobId": id, "status": st, "change": change})
}

// ToggleSave flips the bookmark of {"jobId"}.
func (s *Server) ToggleSave(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := jobID(req)
	if err != nil {
		return nil, err
	}
	saved, err := s.svc.ToggleSave(ctx, id)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return toStruct(map[string]any{"jobId": id, "saved": saved})
}

// GenerateDigest builds and stores today's digest.
func (s *Server) GenerateDigest(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	d, err := s.svc.GenerateDigest(ctx)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return toStruct(map[string]any{"generated": true, "digest": d})
}

// GetDigest returns today's digest; "generated" is false when there is none.
func (s *Server) GetDigest(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	d, ok, err := s.svc.TodayDigest(ctx)
	if err != nil {
		return nil, toGRPCError(err)
	}
	out := map[string]any{"generated": ok}
	if ok {
		out["digest"] = d
	}
	return toStruct(out)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// LoggingInterceptor logs every unary call with its duration and code.
func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
			zap.String("code", status.Code(err).String()),
		}
		if status.Code(err) == codes.Internal {
			log.Error("grpc call failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("grpc call", fields...)
		}
		return resp, err
	}
}

// toGRPCError maps domain errors to gRPC status errors.
func toGRPCError(err error) error {
	if errors.Is(err, tracker.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	if errors.Is(err, tracker.ErrNoPreferences) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	var ve *tracker.ValidationError
	if errors.As(err, &ve) {
		return status.Error(codes.InvalidArgument, ve.Msg)
	}
	return status.Error(codes.Internal, "internal server error")
}

func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

func jobID(s *structpb.Struct) (int, error) {
	v, ok := s.GetFields()["jobId"]
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "jobId is required")
	}
	n := v.GetNumberValue()
	if n <= 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, status.Error(codes.InvalidArgument, "jobId must be a positive integer")
	}
	return int(n), nil
}

// toStruct converts v to a Struct through its JSON form so the gRPC payload
// matches the HTTP one field for field.
func toStruct(v map[string]any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}
