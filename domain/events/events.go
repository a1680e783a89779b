package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePredictionPlaced  EventType = "prediction_placed"
	EventTypeMatchProcessed    EventType = "match_processed"
	EventTypePredictionsVoided EventType = "predictions_voided"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PredictionPlacedEvent represents a prediction that was created or replaced
type PredictionPlacedEvent struct {
	PredictionID    int64  `json:"prediction_id"`
	UserID          int64  `json:"user_id"`
	MatchID         int64  `json:"match_id"`
	GroupID         int64  `json:"group_id"`
	PredictedWinner string `json:"predicted_winner"`
	PredictedHome   int    `json:"predicted_home"`
	PredictedAway   int    `json:"predicted_away"`
}

func (e PredictionPlacedEvent) Type() EventType {
	return EventTypePredictionPlaced
}

// MatchProcessedEvent represents a match whose predictions were scored
type MatchProcessedEvent struct {
	MatchID     int64 `json:"match_id"`
	Total       int   `json:"total"`
	ExactCount  int   `json:"exact_count"`
	WinnerCount int   `json:"winner_count"`
	WrongCount  int   `json:"wrong_count"`
	TotalPoints int   `json:"total_points"`
}

func (e MatchProcessedEvent) Type() EventType {
	return EventTypeMatchProcessed
}

// PredictionsVoidedEvent represents predictions voided by a cancellation
type PredictionsVoidedEvent struct {
	MatchID int64 `json:"match_id"`
	Voided  int   `json:"voided"`
}

func (e PredictionsVoidedEvent) Type() EventType {
	return EventTypePredictionsVoided
}
