// Package intent is the boundary that buffers client-originated inputs
// between ticks. The core never sees a mid-tick arrival: claims and
// diplomatic actions accumulate here and reach the processor as a complete
// batch at the next tick.
package intent

import (
	"context"
	"errors"
	"strings"

	"starweave/internal/app/ports"
	"starweave/internal/domain/territory"
	"starweave/internal/runtime"
)

var (
	ErrInvalidRequest = errors.New("invalid intent request")
	ErrClaimRejected  = errors.New("claim rejected")
	ErrUnknownKind    = errors.New("unknown diplomatic action kind")
)

type UseCase struct {
	Loop    *runtime.Loop
	Metrics ports.TickMetrics
}

type ClaimRequest struct {
	PlayerID string `json:"player_id"`
	NodeID   string `json:"node_id"`
}

type ClaimResponse struct {
	Accepted bool  `json:"accepted"`
	Tick     int64 `json:"tick"`
}

func (u UseCase) SubmitClaim(_ context.Context, req ClaimRequest) (ClaimResponse, error) {
	playerID := strings.TrimSpace(req.PlayerID)
	nodeID := strings.TrimSpace(req.NodeID)
	if playerID == "" || nodeID == "" {
		return ClaimResponse{}, ErrInvalidRequest
	}

	snapshot := u.Loop.Snapshot()
	accepted := u.Loop.SubmitClaim(territory.ClaimAction{
		PlayerID: playerID,
		NodeID:   nodeID,
		Tick:     snapshot.CurrentTick + 1,
	})
	u.recordIntent(accepted)
	if !accepted {
		return ClaimResponse{}, ErrClaimRejected
	}
	return ClaimResponse{Accepted: true, Tick: snapshot.CurrentTick + 1}, nil
}

type DiplomacyRequest struct {
	Kind         string `json:"kind"`
	FromPlayerID string `json:"from_player_id"`
	ToPlayerID   string `json:"to_player_id"`
}

type DiplomacyResponse struct {
	Buffered bool  `json:"buffered"`
	Tick     int64 `json:"tick"`
}

var diplomacyKinds = map[string]bool{
	runtime.DiplomacyOfferAlliance:  true,
	runtime.DiplomacyAcceptAlliance: true,
	runtime.DiplomacyRejectAlliance: true,
	runtime.DiplomacyDeclareWar:     true,
	runtime.DiplomacyProposePeace:   true,
	runtime.DiplomacyAcceptPeace:    true,
	runtime.DiplomacyRejectPeace:    true,
}

func (u UseCase) SubmitDiplomacy(_ context.Context, req DiplomacyRequest) (DiplomacyResponse, error) {
	from := strings.TrimSpace(req.FromPlayerID)
	to := strings.TrimSpace(req.ToPlayerID)
	if from == "" || to == "" || from == to {
		return DiplomacyResponse{}, ErrInvalidRequest
	}
	if !diplomacyKinds[req.Kind] {
		return DiplomacyResponse{}, ErrUnknownKind
	}

	snapshot := u.Loop.Snapshot()
	u.Loop.SubmitDiplomacy(runtime.DiplomaticAction{
		Kind:         req.Kind,
		FromPlayerID: from,
		ToPlayerID:   to,
	})
	u.recordIntent(true)
	return DiplomacyResponse{Buffered: true, Tick: snapshot.CurrentTick + 1}, nil
}

func (u UseCase) recordIntent(accepted bool) {
	if u.Metrics != nil {
		u.Metrics.RecordIntent(accepted)
	}
}
