package handler

import "github.com/fittrack/exercise-tracker/internal/core/ports"

// --- Service result → HTTP response ---

func toExerciseResponse(r *ports.ExerciseResult) exerciseResponse {
	return exerciseResponse{
		ID:          r.ID,
		Username:    r.Username,
		Description: r.Description,
		Duration:    r.Duration,
		Date:        r.Date,
	}
}

func toLogResponse(r *ports.LogResult) logResponse {
	log := make([]logEntryResponse, 0, len(r.Log))
	for _, e := range r.Log {
		log = append(log, logEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date,
		})
	}
	return logResponse{
		ID:       r.ID,
		Username: r.Username,
		Count:    r.Count,
		Log:      log,
	}
}
