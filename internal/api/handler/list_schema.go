package handler

import (
	"encoding/json"
	"strconv"
)

type createListRequest struct {
	Name     string `json:"name" validate:"required"`
	ItemType string `json:"itemType" validate:"required"`
}

type renameListRequest struct {
	Name string `json:"name" validate:"required"`
}

type addListItemRequest struct {
	Item   string   `json:"item" validate:"required"`
	Rating *float64 `json:"rating"`
}

// updateListItemRequest keeps the rating raw: clients send it as a
// number, a numeric string, or garbage, and anything unusable is
// ignored rather than rejected.
type updateListItemRequest struct {
	Rating json.RawMessage `json:"rating"`
	List   string          `json:"list"`
}

// parseLenientRating extracts a float from a raw rating value, taking
// JSON numbers and numeric strings. Anything else yields nil.
func parseLenientRating(raw json.RawMessage) *float64 {
	// unmarshalling null into a float64 succeeds without touching it,
	// so it needs its own check
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if v, err := strconv.ParseFloat(str, 64); err == nil {
			return &v
		}
	}
	return nil
}
