package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p StairsPayload) Validate() error {
	switch strings.ToLower(p.Direction) {
	case "down", "up":
		return nil
	}
	return errors.New("direction must be up or down")
}

func (p ItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}

func (p SlotPayload) Validate() error {
	if p.Slot == "" {
		return errors.New("slot is required")
	}
	return nil
}

func (p TeleportPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("coordinates must be non-negative")
	}
	return nil
}

func (p SpawnPayload) Validate() error {
	if p.Template == "" {
		return errors.New("template is required")
	}
	return nil
}

func (p KillPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p SavePayload) Validate() error {
	if p.Slot < -1 {
		return errors.New("slot must be -1 or greater")
	}
	return nil
}
