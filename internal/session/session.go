package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/blur-faces-mcp/internal/blur"
	"github.com/ironsheep/blur-faces-mcp/internal/history"
	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

var (
	// ErrTerminated is returned for any operation after the session has quit.
	ErrTerminated = errors.New("session terminated")

	// ErrEmptyHistory is returned by Undo when there is nothing to undo.
	ErrEmptyHistory = history.ErrEmpty

	// ErrNoImage is returned by New when no buffer is supplied.
	ErrNoImage = errors.New("no image to edit")

	// ErrUnknownCommand is returned by Dispatch for a command with no transition.
	ErrUnknownCommand = errors.New("unknown command")
)

// State is the lifecycle state of a session.
type State int

const (
	// StateActive accepts input.
	StateActive State = iota
	// StateTerminated is final; every transition is rejected.
	StateTerminated
)

func (s State) String() string {
	if s == StateTerminated {
		return "terminated"
	}
	return "active"
}

// Ending records how a session terminated.
type Ending int

const (
	EndingNone Ending = iota
	EndingSave
	EndingDiscard
)

func (e Ending) String() string {
	switch e {
	case EndingSave:
		return "save"
	case EndingDiscard:
		return "discard"
	}
	return "none"
}

// Result describes the effect of a dispatched command.
type Result struct {
	Command Command
	// Notice is a short human-readable message, e.g. "Radius: 60".
	Notice string
	// Ending is set when the command terminated the session.
	Ending Ending
}

// Status is a read-only view of the session for display.
type Status struct {
	Width               int    `json:"width"`
	Height              int    `json:"height"`
	Radius              int    `json:"radius"`
	KernelSize          int    `json:"kernel_size"`
	EffectiveKernelSize int    `json:"effective_kernel_size"`
	History             int    `json:"history"`
	State               string `json:"state"`
	Cursor              *Point `json:"cursor,omitempty"`
}

// Point is a pointer position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Session is the interactive edit state for one loaded image.
//
// It owns the live buffer, the brush parameters and the undo history. All
// methods are synchronous and must be called from a single goroutine.
type Session struct {
	buf     *raster.Buffer
	params  Params
	history *history.Stack
	comp    *blur.Compositor

	state  State
	ending Ending

	cursor    image.Point
	hasCursor bool
}

// New starts an active session editing buf with default parameters.
// The session takes ownership of buf.
func New(buf *raster.Buffer) (*Session, error) {
	return NewWithCompositor(buf, blur.NewCompositor())
}

// NewWithCompositor is New with a caller-supplied compositor.
func NewWithCompositor(buf *raster.Buffer, comp *blur.Compositor) (*Session, error) {
	if buf == nil {
		return nil, ErrNoImage
	}
	if comp == nil {
		comp = blur.NewCompositor()
	}
	return &Session{
		buf:     buf,
		params:  DefaultParams(),
		history: history.New(),
		comp:    comp,
		state:   StateActive,
	}, nil
}

// Buffer returns the live buffer. It is replaced, not mutated, by Undo, so
// callers should not hold on to it across commands.
func (s *Session) Buffer() *raster.Buffer { return s.buf }

// Params returns the current brush parameters.
func (s *Session) Params() Params { return s.params }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Ending returns how the session terminated, or EndingNone while active.
func (s *Session) Ending() Ending { return s.ending }

// HistoryLen returns the number of undoable edits.
func (s *Session) HistoryLen() int { return s.history.Len() }

// Cursor returns the last pointer position and whether one has been reported.
func (s *Session) Cursor() (image.Point, bool) { return s.cursor, s.hasCursor }

// Status returns a display snapshot of the session.
func (s *Session) Status() Status {
	st := Status{
		Width:               s.buf.Width(),
		Height:              s.buf.Height(),
		Radius:              s.params.Radius,
		KernelSize:          s.params.KernelSize,
		EffectiveKernelSize: s.params.EffectiveKernelSize(),
		History:             s.history.Len(),
		State:               s.state.String(),
	}
	if s.hasCursor {
		st.Cursor = &Point{X: s.cursor.X, Y: s.cursor.Y}
	}
	return st
}

// MoveCursor records the pointer position. Any coordinates are accepted.
func (s *Session) MoveCursor(x, y int) error {
	if s.state != StateActive {
		return ErrTerminated
	}
	s.cursor = image.Pt(x, y)
	s.hasCursor = true
	return nil
}

// Click blurs the disc around (x, y) using the current radius and kernel size.
//
// It reports whether anything was blurred. A click whose clamped bounding box
// is empty changes nothing and adds no history entry.
func (s *Session) Click(x, y int) (bool, error) {
	if s.state != StateActive {
		return false, ErrTerminated
	}
	_, applied, err := s.comp.Apply(s.buf, s.history, x, y, s.params.Radius, s.params.EffectiveKernelSize())
	if err != nil {
		return applied, fmt.Errorf("blur at (%d,%d): %w", x, y, err)
	}
	return applied, nil
}

// IncreaseRadius adds RadiusStep, holding at MaxRadius.
func (s *Session) IncreaseRadius() error { return s.adjust(func(p Params) Params { return p.stepRadius(RadiusStep) }) }

// DecreaseRadius subtracts RadiusStep, holding at MinRadius.
func (s *Session) DecreaseRadius() error { return s.adjust(func(p Params) Params { return p.stepRadius(-RadiusStep) }) }

// IncreaseBlur adds KernelStep to the kernel size, holding at MaxKernelSize.
func (s *Session) IncreaseBlur() error { return s.adjust(func(p Params) Params { return p.stepKernel(KernelStep) }) }

// DecreaseBlur subtracts KernelStep from the kernel size, holding at MinKernelSize.
func (s *Session) DecreaseBlur() error { return s.adjust(func(p Params) Params { return p.stepKernel(-KernelStep) }) }

func (s *Session) adjust(fn func(Params) Params) error {
	if s.state != StateActive {
		return ErrTerminated
	}
	s.params = fn(s.params)
	return nil
}

// Undo restores the image to its state before the most recent blur.
//
// # Errors
//
//   - ErrEmptyHistory if there is nothing to undo; the image is unchanged
//   - ErrTerminated after quit
func (s *Session) Undo() error {
	if s.state != StateActive {
		return ErrTerminated
	}
	prev, err := s.history.Pop()
	if err != nil {
		return err
	}
	s.buf = prev
	return nil
}

// QuitAndSave terminates the session and returns the final buffer for the
// caller to persist.
func (s *Session) QuitAndSave() (*raster.Buffer, error) {
	if s.state != StateActive {
		return nil, ErrTerminated
	}
	s.terminate(EndingSave)
	return s.buf, nil
}

// QuitDiscard terminates the session; the caller drops the buffer.
func (s *Session) QuitDiscard() error {
	if s.state != StateActive {
		return ErrTerminated
	}
	s.terminate(EndingDiscard)
	return nil
}

func (s *Session) terminate(e Ending) {
	s.state = StateTerminated
	s.ending = e
	s.history.Clear()
}

// Dispatch runs a key command.
//
// An empty undo history is not an error here: it is reported through
// Result.Notice and the session carries on. Errors are ErrTerminated and
// ErrUnknownCommand for CommandNone or out-of-range values.
func (s *Session) Dispatch(cmd Command) (Result, error) {
	res := Result{Command: cmd}
	if s.state != StateActive {
		return res, ErrTerminated
	}

	switch cmd {
	case CommandIncreaseRadius, CommandDecreaseRadius:
		if cmd == CommandIncreaseRadius {
			_ = s.IncreaseRadius()
		} else {
			_ = s.DecreaseRadius()
		}
		res.Notice = fmt.Sprintf("Radius: %d", s.params.Radius)
	case CommandIncreaseBlur, CommandDecreaseBlur:
		if cmd == CommandIncreaseBlur {
			_ = s.IncreaseBlur()
		} else {
			_ = s.DecreaseBlur()
		}
		res.Notice = fmt.Sprintf("Blur strength: %d", s.params.KernelSize)
	case CommandUndo:
		if err := s.Undo(); err != nil {
			if !errors.Is(err, ErrEmptyHistory) {
				return res, err
			}
			res.Notice = "Nothing to undo."
		} else {
			res.Notice = "Undo."
		}
	case CommandSaveAndQuit:
		s.terminate(EndingSave)
		res.Ending = EndingSave
	case CommandDiscard:
		s.terminate(EndingDiscard)
		res.Ending = EndingDiscard
		res.Notice = "Exited without saving."
	default:
		return res, fmt.Errorf("%w: %d", ErrUnknownCommand, cmd)
	}
	return res, nil
}
