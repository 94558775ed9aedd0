package console

// Status is the phase of a page action
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// ViewState tracks one page action: idle -> loading -> success|failure -> idle.
// Outcome keeps the result after Status has gone back to idle so the page can
// render its notification.
type ViewState struct {
	Status  Status
	Outcome Status
	Error   string
	Notice  string
}

// Do runs action. A nil error records notice, anything else becomes the
// error notification. Status always returns to idle.
func (s *ViewState) Do(notice string, action func() error) error {
	s.Status = StatusLoading
	defer func() { s.Status = StatusIdle }()

	if err := action(); err != nil {
		s.Fail(err.Error())
		return err
	}
	s.Outcome = StatusSuccess
	s.Notice = notice
	s.Error = ""
	return nil
}

// Fail records a failure without running an action
func (s *ViewState) Fail(message string) {
	s.Outcome = StatusFailure
	s.Error = message
	s.Notice = ""
}

// Failed reports whether the last action failed
func (s *ViewState) Failed() bool {
	return s.Outcome == StatusFailure
}

func newViewState() *ViewState {
	return &ViewState{Status: StatusIdle, Outcome: StatusIdle}
}
