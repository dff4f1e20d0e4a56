package interact

import "github.com/papapumpkin/vcdscope/internal/trace"

// State is the pointer-gesture state of a Controller. The implementations
// are Idle, DraggingCursor, DraggingMarker and Panning.
type State interface {
	isState()
}

// Idle means no gesture is in progress.
type Idle struct{}

// DraggingCursor means the cursor follows the pointer.
type DraggingCursor struct {
	from int64
}

// DraggingMarker means Marker follows the pointer.
type DraggingMarker struct {
	Marker *trace.Marker
	from   int64
}

// Panning means the pointer drags the visible content.
type Panning struct {
	lastX, lastY int
}

func (Idle) isState()           {}
func (DraggingCursor) isState() {}
func (DraggingMarker) isState() {}
func (Panning) isState()        {}
