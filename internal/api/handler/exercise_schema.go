package handler

import "encoding/json"

// durationField binds as a plain string from form posts but also accepts a
// bare JSON number, so `{"duration":30}` and `{"duration":"30"}` both reach
// the duration validator instead of dying in the decoder.
type durationField string

func (f *durationField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = durationField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = durationField(n.String())
	return nil
}

// Duration and Date are bound as strings: the surface accepts form posts and
// the service owns parsing, so "abc" reaches the duration validator instead
// of dying in the JSON decoder.
type addExerciseRequest struct {
	Description string        `json:"description" form:"description" validate:"required"`
	Duration    durationField `json:"duration"    form:"duration"    validate:"required"`
	Date        string        `json:"date"        form:"date"`
}

// exerciseResponse is the flat append response. Date carries the rendered
// calendar string (e.g. "Mon Jan 1 2024").
type exerciseResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type logEntryResponse struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// logResponse is the query response. Count is the number of date-filtered
// entries before the limit was applied.
type logResponse struct {
	ID       string             `json:"id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []logEntryResponse `json:"log"`
}
