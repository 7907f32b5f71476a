package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"starweave/internal/app/control"
	"starweave/internal/app/intent"
	"starweave/internal/app/observe"
	"starweave/internal/app/pathing"
	"starweave/internal/app/ports"
	"starweave/internal/app/replay"
	"starweave/internal/domain/graph"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	ObserveUC observe.UseCase
	IntentUC  intent.UseCase
	PathingUC pathing.UseCase
	ReplayUC  replay.UseCase
	ControlUC control.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	s.Use(rateLimitMiddleware(10, 20))

	world := s.Group("/api/world")
	world.GET("/observe", h.observe)
	world.POST("/claim", h.claim)
	world.POST("/diplomacy", h.diplomacy)
	world.GET("/path", h.path)
	world.GET("/reachable", h.reachable)
	world.GET("/replay", h.replay)
	world.POST("/control", h.controlCmd)

	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Execute(c, observe.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) claim(c context.Context, ctx *app.RequestContext) {
	var body intent.ClaimRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.IntentUC.SubmitClaim(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusAccepted, resp)
}

func (h Handler) diplomacy(c context.Context, ctx *app.RequestContext) {
	var body intent.DiplomacyRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.IntentUC.SubmitDiplomacy(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusAccepted, resp)
}

func (h Handler) path(c context.Context, ctx *app.RequestContext) {
	req := pathing.PathRequest{
		SourceID: string(ctx.Query("source_id")),
		TargetID: string(ctx.Query("target_id")),
		Funds:    parseFunds(string(ctx.Query("funds"))),
	}
	resp, err := h.PathingUC.FindPath(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) reachable(c context.Context, ctx *app.RequestContext) {
	budget, _ := strconv.ParseFloat(string(ctx.Query("cost_budget")), 64)
	req := pathing.ReachableRequest{
		SourceID:   string(ctx.Query("source_id")),
		CostBudget: budget,
		Funds:      parseFunds(string(ctx.Query("funds"))),
	}
	resp, err := h.PathingUC.Reachable(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	fromTick, _ := strconv.ParseInt(string(ctx.Query("from_tick")), 10, 64)
	toTick, _ := strconv.ParseInt(string(ctx.Query("to_tick")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		WorldID:  string(ctx.Query("world_id")),
		Limit:    limit,
		FromTick: fromTick,
		ToTick:   toTick,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) controlCmd(c context.Context, ctx *app.RequestContext) {
	var body control.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ControlUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// parseFunds reads "metal:5,fuel:2" into a funds map. Malformed entries are
// skipped.
func parseFunds(raw string) map[string]int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	funds := map[string]int{}
	for _, part := range strings.Split(raw, ",") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		amount, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			continue
		}
		funds[strings.TrimSpace(kv[0])] = amount
	}
	if len(funds) == 0 {
		return nil
	}
	return funds
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, intent.ErrClaimRejected):
		writeErrorBody(ctx, consts.StatusConflict, "claim_rejected", err.Error())
	case errors.Is(err, intent.ErrUnknownKind):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_kind", err.Error())
	case errors.Is(err, control.ErrUnknownCommand):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_command", err.Error())
	case errors.Is(err, control.ErrNoRepository):
		writeErrorBody(ctx, consts.StatusConflict, "no_repository", err.Error())
	case errors.Is(err, graph.ErrNodeNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "node_not_found", err.Error())
	case errors.Is(err, graph.ErrNoPath):
		writeErrorBody(ctx, consts.StatusNotFound, "no_path", err.Error())
	case errors.Is(err, intent.ErrInvalidRequest),
		errors.Is(err, control.ErrInvalidRequest),
		errors.Is(err, pathing.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
