package domain

import "errors"

// Operator-facing messages.
const (
	MsgProvideFileName   = "Please provide a filename."
	MsgSearching         = "Searching..."
	MsgNoChunks          = "No chunks found for this file."
	MsgNetworkError      = "Network error."
	MsgEditIncomplete    = "ID and Content are required."
	MsgSaving            = "Saving changes..."
	MsgUpdated           = "Successfully updated!"
	MsgUnknownError      = "Unknown error"
	MsgBackendDown       = "Could not reach backend: wrong port or server down?"
	MsgCannotConnect     = "Could not connect to backend."
	msgErrorPrefix       = "Error: "
	msgFilenamesPrefix   = "Error fetching filenames: "
	msgMoreChunksOmitted = "More chunks exist than the backend returned."
)

// ResultPhase is the lifecycle of the chunk result area.
type ResultPhase int

const (
	// ResultsIdle means nothing has been browsed yet.
	ResultsIdle ResultPhase = iota
	// ResultsLoading means a browse is in flight.
	ResultsLoading
	// ResultsLoaded means chunks are displayed.
	ResultsLoaded
	// ResultsEmpty means the backend returned no chunks.
	ResultsEmpty
	// ResultsFailed means the last browse failed.
	ResultsFailed
)

// String returns the phase name.
func (p ResultPhase) String() string {
	switch p {
	case ResultsIdle:
		return "idle"
	case ResultsLoading:
		return "loading"
	case ResultsLoaded:
		return "loaded"
	case ResultsEmpty:
		return "empty"
	case ResultsFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ResultArea describes what the chunk result area shows.
type ResultArea struct {
	Phase    ResultPhase
	FileName string

	// Message is the loading, empty or error text. Empty when chunks are shown.
	Message string

	// HasMore is set when the backend holds chunks beyond the returned page.
	HasMore bool
}

// MoreHint returns the hint shown under a truncated result list.
func (r ResultArea) MoreHint() string {
	if !r.HasMore {
		return ""
	}
	return msgMoreChunksOmitted
}

// BrowseResult is the outcome of a browse as seen by a renderer.
type BrowseResult struct {
	FileName string
	Chunks   []Chunk
	Area     ResultArea
}

// StatusKind classifies the editor status message.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusPending
	StatusSuccess
	StatusError
)

// String returns the kind name.
func (k StatusKind) String() string {
	switch k {
	case StatusNone:
		return "none"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the last editor status message.
type Status struct {
	Kind    StatusKind
	Message string
}

// EffectKind names a side effect requested by a state transition.
type EffectKind int

const (
	// EffectNone requests nothing.
	EffectNone EffectKind = iota
	// EffectScroll requests a chunk scroll for Effect.FileName.
	EffectScroll
	// EffectUpsert requests submission of Effect.Request.
	EffectUpsert
	// EffectScheduleRefresh requests a delayed browse of the filename field,
	// valid only while the generation is still Effect.Generation.
	EffectScheduleRefresh
)

// Effect describes a side effect for the caller to carry out.
type Effect struct {
	Kind       EffectKind
	FileName   string
	Request    EditRequest
	Token      uint64
	Generation uint64
}

// State is the whole client session.
// Transitions are pure: each returns a new State and the Effect to run.
type State struct {
	// SelectedFile is the filename field.
	SelectedFile string

	// LastChunks are the chunks of the last successful browse.
	LastChunks []Chunk

	// ChunksFile is the document LastChunks were fetched for.
	ChunksFile string

	// Results is the result area.
	Results ResultArea

	// EditingID, EditingContent and EditingAction are the edit form.
	EditingID      PointID
	EditingContent string
	EditingAction  EditAction

	// EditingFile is the document the edited chunk was fetched from.
	// Empty when the edit form was filled by hand.
	EditingFile string

	// Status is the editor status line.
	Status Status

	// BrowseToken is the token of the latest issued browse.
	BrowseToken uint64

	// EditToken is the token of the latest issued edit submission.
	EditToken uint64

	// Generation counts operator actions. A pending refresh is only
	// valid for the generation it was scheduled in.
	Generation uint64
}

// NewState returns the initial empty session state.
func NewState() State {
	return State{EditingAction: ActionOverwrite}
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	if s.LastChunks != nil {
		chunks := make([]Chunk, len(s.LastChunks))
		copy(chunks, s.LastChunks)
		s.LastChunks = chunks
	}
	return s
}

// WithFileName sets the filename field.
func (s State) WithFileName(name string) State {
	s.SelectedFile = name
	return s
}

// WithEditID sets the point id field of the edit form. A hand-set id is
// no longer bound to the document of the last browse.
func (s State) WithEditID(id PointID) State {
	s.EditingID = id
	s.EditingFile = ""
	return s
}

// WithEditContent sets the content field of the edit form.
func (s State) WithEditContent(content string) State {
	s.EditingContent = content
	return s
}

// WithEditAction sets the action of the edit form.
func (s State) WithEditAction(action EditAction) State {
	s.EditingAction = action
	return s
}

// BeginBrowse starts a browse of fileName. Operator browses advance the
// generation; refresh browses do not.
func (s State) BeginBrowse(fileName string, operator bool) (State, Effect, error) {
	if fileName == "" {
		return s, Effect{}, ErrEmptyFileName
	}
	if operator {
		s.Generation++
	}
	s.SelectedFile = fileName
	s.BrowseToken++
	s.Results = ResultArea{Phase: ResultsLoading, FileName: fileName, Message: MsgSearching}
	return s, Effect{Kind: EffectScroll, FileName: fileName, Token: s.BrowseToken, Generation: s.Generation}, nil
}

// CompleteBrowse applies a scroll response. It reports false when token is
// no longer the latest browse, in which case s is returned unchanged.
func (s State) CompleteBrowse(token uint64, page ScrollPage) (State, bool) {
	if token != s.BrowseToken {
		return s, false
	}

	fileName := s.Results.FileName
	chunks := make([]Chunk, len(page.Chunks))
	for i, c := range page.Chunks {
		c.Origin = fileName
		chunks[i] = c
	}

	s.LastChunks = chunks
	s.ChunksFile = fileName
	if len(chunks) == 0 {
		s.Results = ResultArea{Phase: ResultsEmpty, FileName: fileName, Message: MsgNoChunks}
		return s, true
	}
	s.Results = ResultArea{Phase: ResultsLoaded, FileName: fileName, HasMore: page.HasMore}
	return s, true
}

// FailBrowse applies a scroll failure. It reports false for a stale token.
func (s State) FailBrowse(token uint64, err error) (State, bool) {
	if token != s.BrowseToken {
		return s, false
	}
	s.LastChunks = nil
	s.ChunksFile = ""
	s.Results = ResultArea{
		Phase:    ResultsFailed,
		FileName: s.Results.FileName,
		Message:  BrowseFailureMessage(err),
	}
	return s, true
}

// Browse returns the result area as a BrowseResult.
func (s State) Browse() BrowseResult {
	return BrowseResult{FileName: s.Results.FileName, Chunks: s.Clone().LastChunks, Area: s.Results}
}

// PrepareEdit fills the edit form. The originating document is taken from
// the last browse when it holds a chunk with this id.
func (s State) PrepareEdit(id PointID, content string) State {
	s.Generation++
	s.EditingID = id
	s.EditingContent = content
	s.EditingFile = ""
	for _, c := range s.LastChunks {
		if c.ID == id {
			s.EditingFile = c.Origin
			break
		}
	}
	return s
}

// BeginOverwrite validates the edit form and starts a submission.
func (s State) BeginOverwrite() (State, Effect, error) {
	s.Generation++
	action := s.EditingAction
	if action == "" {
		action = ActionOverwrite
	}

	fileName := s.EditingFile
	if fileName == "" {
		fileName = s.SelectedFile
	}

	req := EditRequest{
		PointID:    s.EditingID,
		FileName:   fileName,
		NewContent: s.EditingContent,
		Action:     action,
	}
	if err := req.Validate(); err != nil {
		s.Status = Status{Kind: StatusError, Message: MsgEditIncomplete}
		if errors.Is(err, ErrUnknownAction) {
			s.Status.Message = msgErrorPrefix + err.Error()
		}
		return s, Effect{}, err
	}

	s.EditToken++
	s.Status = Status{Kind: StatusPending, Message: MsgSaving}
	return s, Effect{Kind: EffectUpsert, Request: req, Token: s.EditToken, Generation: s.Generation}, nil
}

// CompleteOverwrite applies a successful submission started by submitted.
// The returned effect schedules a refresh unless a newer operator action
// has happened since the submission. It reports false for a stale token.
func (s State) CompleteOverwrite(submitted Effect, _ UpsertResult) (State, Effect, bool) {
	if submitted.Token != s.EditToken {
		return s, Effect{}, false
	}
	s.Status = Status{Kind: StatusSuccess, Message: MsgUpdated}
	if submitted.Generation != s.Generation {
		return s, Effect{}, true
	}
	return s, Effect{Kind: EffectScheduleRefresh, Generation: s.Generation}, true
}

// FailOverwrite applies a failed submission. The edit form is kept so the
// operator can resubmit. It reports false for a stale token.
func (s State) FailOverwrite(token uint64, err error) (State, bool) {
	if token != s.EditToken {
		return s, false
	}
	s.Status = Status{Kind: StatusError, Message: OverwriteFailureMessage(err)}
	return s, true
}

// BeginRefresh starts the delayed browse scheduled in generation. It reports
// false when a newer operator action superseded the refresh. The filename
// field is read now, not when the refresh was scheduled.
func (s State) BeginRefresh(generation uint64) (State, Effect, bool, error) {
	if generation != s.Generation {
		return s, Effect{}, false, nil
	}
	next, eff, err := s.BeginBrowse(s.SelectedFile, false)
	return next, eff, true, err
}

// BrowseFailureMessage renders a browse failure for the result area.
func BrowseFailureMessage(err error) string {
	if errors.Is(err, ErrBackendUnreachable) {
		return MsgNetworkError
	}
	if errors.Is(err, ErrEmptyFileName) {
		return MsgProvideFileName
	}
	if detail, ok := DetailOf(err); ok {
		if detail == "" {
			detail = MsgUnknownError
		}
		return msgErrorPrefix + detail
	}
	return msgErrorPrefix + err.Error()
}

// OverwriteFailureMessage renders a submission failure for the status line.
func OverwriteFailureMessage(err error) string {
	if errors.Is(err, ErrBackendUnreachable) {
		return MsgBackendDown
	}
	if errors.Is(err, ErrEditIncomplete) {
		return MsgEditIncomplete
	}
	if detail, ok := DetailOf(err); ok {
		if detail == "" {
			detail = MsgUnknownError
		}
		return msgErrorPrefix + detail
	}
	return msgErrorPrefix + err.Error()
}

// DirectoryFailureMessage renders a filename listing failure for a notification.
func DirectoryFailureMessage(err error) string {
	if errors.Is(err, ErrBackendUnreachable) {
		return MsgCannotConnect
	}
	if detail, ok := DetailOf(err); ok {
		if detail == "" {
			detail = MsgUnknownError
		}
		return msgFilenamesPrefix + detail
	}
	return msgFilenamesPrefix + err.Error()
}
