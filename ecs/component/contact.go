package component

import "github.com/jakecoffman/cp"

// Contact is one contact normal pushing out of the touched surface toward the character.
type Contact struct {
	Normal cp.Vector
}

// Contacts holds the contacts delivered for the current tick.
type Contacts struct {
	Items []Contact
}

var ContactsComponent = NewComponent[Contacts]()

// ContactState is the classifier's debounce bookkeeping. Landed, WallAcquired
// and WallLost are true only for the tick the transition happened.
type ContactState struct {
	GroundLostFor float64
	WallLostFor   float64
	Landed        bool
	WallAcquired  bool
	WallLost      bool
}

var ContactStateComponent = NewComponent[ContactState]()
