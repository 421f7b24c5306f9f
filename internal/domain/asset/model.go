package asset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

var positionOrder = map[Position]int{
	PositionGoalkeeper: 0,
	PositionDefender:   1,
	PositionMidfielder: 2,
	PositionForward:    3,
}

// PositionFromElementType maps FPL element_type (1..4) to a Position.
func PositionFromElementType(elementType int) (Position, error) {
	switch elementType {
	case 1:
		return PositionGoalkeeper, nil
	case 2:
		return PositionDefender, nil
	case 3:
		return PositionMidfielder, nil
	case 4:
		return PositionForward, nil
	default:
		return "", fmt.Errorf("unknown element type: %d", elementType)
	}
}

func (p Position) Order() int {
	if order, ok := positionOrder[p]; ok {
		return order
	}
	return len(positionOrder)
}

func (p Position) ElementType() int {
	return p.Order() + 1
}

// Label is the long display name.
func (p Position) Label() string {
	switch p {
	case PositionGoalkeeper:
		return "Goalkeeper"
	case PositionDefender:
		return "Defender"
	case PositionMidfielder:
		return "Midfielder"
	case PositionForward:
		return "Forward"
	default:
		return "Unknown"
	}
}

// Asset is a selectable player in one gameweek snapshot.
type Asset struct {
	ID          int64
	Name        string
	Position    Position
	TeamID      int64
	TeamName    string
	Cost        int64
	Form        float64
	FixtureDiff float64
	TotalPoints int
}

func (a Asset) Validate() error {
	if a.ID <= 0 {
		return fmt.Errorf("asset id must be greater than zero")
	}
	if _, ok := AllPositions[a.Position]; !ok {
		return fmt.Errorf("invalid asset position: %s", a.Position)
	}
	if a.TeamID <= 0 {
		return fmt.Errorf("asset team id is required: %d", a.ID)
	}
	if a.Cost <= 0 {
		return fmt.Errorf("asset cost must be greater than zero: %d", a.ID)
	}

	return nil
}

// ParseForm converts a feed value into a numeric form, defaulting to 0.
func ParseForm(raw any) float64 {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		value = parsed
	default:
		return 0
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
