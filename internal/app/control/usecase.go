// Package control drives the loop scheduler from the outside: start, stop,
// pause, resume, speed changes, and snapshot save/load against the world
// repository.
package control

import (
	"context"
	"errors"
	"strings"

	"starweave/internal/app/ports"
	"starweave/internal/runtime"
)

const (
	CommandStart  = "start"
	CommandStop   = "stop"
	CommandPause  = "pause"
	CommandResume = "resume"
	CommandSpeed  = "speed"
	CommandSave   = "save"
	CommandLoad   = "load"
)

var (
	ErrInvalidRequest = errors.New("invalid control request")
	ErrUnknownCommand = errors.New("unknown control command")
	ErrNoRepository   = errors.New("no world repository configured")
)

type UseCase struct {
	Loop   *runtime.Loop
	Worlds ports.WorldRepository
}

type Request struct {
	Command string  `json:"command"`
	Speed   float64 `json:"speed,omitempty"`
	WorldID string  `json:"world_id,omitempty"`
}

type Response struct {
	Command     string  `json:"command"`
	CurrentTick int64   `json:"current_tick"`
	Speed       float64 `json:"speed"`
	IsPaused    bool    `json:"is_paused"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	switch strings.TrimSpace(req.Command) {
	case CommandStart:
		u.Loop.Start()
	case CommandStop:
		u.Loop.Stop()
	case CommandPause:
		u.Loop.Pause()
	case CommandResume:
		u.Loop.Resume()
	case CommandSpeed:
		if req.Speed <= 0 {
			return Response{}, ErrInvalidRequest
		}
		u.Loop.SetSpeed(req.Speed)
	case CommandSave:
		if u.Worlds == nil {
			return Response{}, ErrNoRepository
		}
		if err := u.Worlds.SaveSnapshot(ctx, u.Loop.Snapshot()); err != nil {
			return Response{}, err
		}
	case CommandLoad:
		if u.Worlds == nil {
			return Response{}, ErrNoRepository
		}
		worldID := strings.TrimSpace(req.WorldID)
		if worldID == "" {
			return Response{}, ErrInvalidRequest
		}
		w, err := u.Worlds.LoadSnapshot(ctx, worldID)
		if err != nil {
			return Response{}, err
		}
		u.Loop.Restore(w)
	default:
		return Response{}, ErrUnknownCommand
	}

	w := u.Loop.Snapshot()
	return Response{
		Command:     req.Command,
		CurrentTick: w.CurrentTick,
		Speed:       w.Speed,
		IsPaused:    w.IsPaused,
	}, nil
}
