package domain

import "time"

// EditOutcome is the result of a submitted edit.
type EditOutcome string

const (
	OutcomeSuccess EditOutcome = "success"
	OutcomeFailed  EditOutcome = "failed"
)

// EditRecord is a journal entry for an edit that reached the network.
type EditRecord struct {
	// ID is assigned by the history store when empty.
	ID string

	PointID  PointID
	FileName string
	Action   EditAction

	// ContentLength is the length in bytes of the submitted content.
	ContentLength int

	Outcome EditOutcome

	// Message is the backend's success message or the failure text.
	Message string

	SubmittedAt time.Time
}

// NewEditRecord builds the journal entry for req and its outcome.
func NewEditRecord(req EditRequest, res UpsertResult, err error, at time.Time) EditRecord {
	rec := EditRecord{
		PointID:       req.PointID,
		FileName:      req.FileName,
		Action:        req.Action,
		ContentLength: len(req.NewContent),
		Outcome:       OutcomeSuccess,
		Message:       res.Message,
		SubmittedAt:   at,
	}
	if err != nil {
		rec.Outcome = OutcomeFailed
		rec.Message = OverwriteFailureMessage(err)
	}
	return rec
}
