package services

import (
	"fmt"

	"github.com/Dosada05/bracket-hub/brackets"
)

// Notifier fans a bracket event out to live viewers of a competition.
// Implementations must be best-effort: services call Notify after their state
// change has committed and never roll back on delivery problems.
type Notifier interface {
	Notify(competitionID int, eventType string, payload interface{})
}

// RoomID names the hub room for a competition.
func RoomID(competitionID int) string {
	return fmt.Sprintf("competition_%d", competitionID)
}

type hubNotifier struct {
	hub *brackets.Hub
}

func NewHubNotifier(hub *brackets.Hub) Notifier {
	return &hubNotifier{hub: hub}
}

func (n *hubNotifier) Notify(competitionID int, eventType string, payload interface{}) {
	n.hub.BroadcastToRoom(RoomID(competitionID), brackets.Event{
		Type:    eventType,
		Payload: payload,
	})
}
