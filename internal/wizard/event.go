package wizard

// Event is an input to Transition.
type Event interface {
	isEvent()
}

type (
	SelectSkinType     struct{ Value string }
	ToggleConcern      struct{ Concern string }
	SelectAge          struct{ Value string }
	SelectLifestyle    struct{ Value string }
	SelectEnvironment  struct{ Value string }
	SetCurrentProducts struct{ Text string }
	SetAllergies       struct{ Text string }

	// SelectImage carries raw file bytes picked by the user.
	SelectImage struct {
		Name string
		Data []byte
	}
	ClearImage struct{}

	Back struct{}
	Next struct{}

	SubmissionSucceeded struct{ Text string }
	SubmissionFailed    struct{ Err error }

	Reset struct{}

	// AuthChanged reports the surrounding session's sign-in status.
	AuthChanged struct {
		SignedIn bool
		Loading  bool
	}
	DismissNotice struct{}
)

func (SelectSkinType) isEvent()      {}
func (ToggleConcern) isEvent()       {}
func (SelectAge) isEvent()           {}
func (SelectLifestyle) isEvent()     {}
func (SelectEnvironment) isEvent()   {}
func (SetCurrentProducts) isEvent()  {}
func (SetAllergies) isEvent()        {}
func (SelectImage) isEvent()         {}
func (ClearImage) isEvent()          {}
func (Back) isEvent()                {}
func (Next) isEvent()                {}
func (SubmissionSucceeded) isEvent() {}
func (SubmissionFailed) isEvent()    {}
func (Reset) isEvent()               {}
func (AuthChanged) isEvent()         {}
func (DismissNotice) isEvent()       {}
