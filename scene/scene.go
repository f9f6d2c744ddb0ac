// ABOUTME: The demo composition: a grid of three radio checkboxes and a reset button under one panel.
// ABOUTME: Frame drives one UI update cycle over the carried pool; Inspect reads widget state through queries.
package scene

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/pool"
	"github.com/2389-research/yorool/router"
	"github.com/2389-research/yorool/widget"
	"github.com/2389-research/yorool/widget/button"
	"github.com/2389-research/yorool/widget/checkbox"
	"github.com/2389-research/yorool/widget/radio"
)

// ErrUnknownControl is returned by Press for a name the scene does not have.
var ErrUnknownControl = errors.New("unknown control")

// Control names accepted by Press.
const (
	RadioA = "A"
	RadioB = "B"
	RadioC = "C"
	Reset  = "reset"
)

// Options tune the routers the scene creates.
type Options struct {
	MaxTicks        int
	MaxStall        int
	StrictContracts bool
	Observer        router.Observer
}

// RadioState is one radio's row in a snapshot.
type RadioState struct {
	Name    string
	Label   string
	Checked bool
}

// State is a snapshot of the scene.
type State struct {
	Frame      int
	Radios     []RadioState
	ResetLabel string
	Clicks     int
}

// Selected returns the name of the checked radio, or "" if none is.
func (s State) Selected() string {
	for _, r := range s.Radios {
		if r.Checked {
			return r.Name
		}
	}
	return ""
}

// String renders the radio row as "A=true B=false C=false".
func (s State) String() string {
	parts := make([]string, 0, len(s.Radios))
	for _, r := range s.Radios {
		parts = append(parts, fmt.Sprintf("%s=%t", r.Name, r.Checked))
	}
	return strings.Join(parts, " ")
}

// Scene owns the widget tree, the pool carried between frames and the
// errors reactors reported.
type Scene struct {
	opts   Options
	schema *message.Schema

	radios []*checkbox.Checkbox
	reset  *button.Button
	group  *radio.Group

	row   *widget.Ribbon
	tree  *widget.Ribbon
	panel *widget.Panel
	arena *widget.Arena
	root  widget.Index

	carried *pool.Pool[message.Msg]
	frames  int
	errs    []error
	notices []string
}

// New builds the grid scene.
func New(opts Options) *Scene {
	s := &Scene{opts: opts, schema: message.NewSchema("grid"), carried: pool.New[message.Msg]()}

	ids := []message.ControlID[checkbox.Event]{
		message.Define[checkbox.Event](s.schema, "RadioA"),
		message.Define[checkbox.Event](s.schema, "RadioB"),
		message.Define[checkbox.Event](s.schema, "RadioC"),
	}
	resetID := message.Define[button.Event](s.schema, "Reset")
	s.schema.MustSeal()

	for i, id := range ids {
		s.radios = append(s.radios, checkbox.New(id, []string{RadioA, RadioB, RadioC}[i]))
	}
	s.reset = button.New(resetID, "Reset")
	s.group = radio.NewGroup(ids...)

	s.row = widget.NewRibbon(widget.Horizontal)
	for _, r := range s.radios {
		s.row.Add(r)
	}
	s.tree = widget.NewRibbon(widget.Vertical, s.row, s.reset)

	s.panel = widget.NewPanel(s.tree, s.group, &resetReactor{id: resetID, group: s.group})
	s.panel.Options = s.routerOptions()
	s.panel.OnError = func(err error) { s.errs = append(s.errs, err) }

	s.arena = widget.NewArena()
	s.root = s.arena.Add(s.panel)
	if _, err := s.arena.OnNotify(s.root, s.notice); err != nil {
		panic(err)
	}
	return s
}

func (s *Scene) routerOptions() []router.Option {
	var opts []router.Option
	if s.opts.MaxTicks > 0 {
		opts = append(opts, router.WithMaxTicks(s.opts.MaxTicks))
	}
	if s.opts.MaxStall > 0 {
		opts = append(opts, router.WithMaxStall(s.opts.MaxStall))
	}
	if s.opts.StrictContracts {
		opts = append(opts, router.WithStrictContracts())
	}
	if s.opts.Observer != nil {
		opts = append(opts, router.WithObserver(s.opts.Observer))
	}
	return opts
}

// notice records notifications that reached the top of the tree unclaimed.
func (s *Scene) notice(idx widget.Index, m message.Msg) bool {
	s.notices = append(s.notices, m.String())
	return true
}

// Schema returns the grid schema.
func (s *Scene) Schema() *message.Schema {
	return s.schema
}

// Tree returns the panel's child, the ribbon the renderer lays out.
func (s *Scene) Tree() *widget.Ribbon {
	return s.tree
}

// Press presses a control by name. The matching protocol runs on the next Frame.
func (s *Scene) Press(name string) error {
	if name == Reset {
		s.reset.Press()
		return nil
	}
	for _, r := range s.radios {
		if r.Label() == name {
			r.Press()
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownControl, name)
}

// Frame runs one UI update cycle: one tick of the window arena over the
// carried pool. It returns the reactor errors raised during the frame.
func (s *Scene) Frame() error {
	before := len(s.errs)
	opts := append(s.routerOptions(), router.WithLabel(fmt.Sprintf("frame %d", s.frames+1)))
	rt := router.New(s.carried, opts...)
	rt.Tick(s.arena)
	s.frames++
	err := errors.Join(s.errs[before:]...)
	if err != nil {
		log.Printf("component=scene action=frame_failed frame=%d err=%v", s.frames, err)
	}
	return err
}

// Frames returns how many frames have run.
func (s *Scene) Frames() int {
	return s.frames
}

// Errors returns every reactor error seen so far.
func (s *Scene) Errors() []error {
	return append([]error(nil), s.errs...)
}

// Notices returns notifications no reactor consumed, oldest first.
func (s *Scene) Notices() []string {
	return append([]string(nil), s.notices...)
}

// State snapshots the widgets directly.
func (s *Scene) State() State {
	st := State{Frame: s.frames, ResetLabel: s.reset.Label(), Clicks: s.reset.Clicks()}
	for _, r := range s.radios {
		st.Radios = append(st.Radios, RadioState{Name: r.Label(), Label: r.Label(), Checked: r.Checked()})
	}
	return st
}

// Inspect reads the same snapshot through GetState and GetLabel queries over
// the widget tree, one query per tick. Notifications the widgets raise
// meanwhile are queued for the panel's reactors on the next Frame.
func (s *Scene) Inspect() (State, error) {
	var stray []message.Msg
	opts := append(s.routerOptions(), router.WithLabel("inspect"),
		router.WithUnclaimed(func(msgs []message.Msg) { stray = append(stray, msgs...) }))
	rt := router.New(nil, opts...)
	st, err := router.Run(s.tree, rt, func(rt *router.Router) (State, error) {
		st := State{Frame: s.frames, Clicks: s.reset.Clicks()}
		for _, r := range s.radios {
			on, err := router.Query(rt, r.ID(), checkbox.GetStateRequest, struct{}{})
			if err != nil {
				return State{}, err
			}
			st.Radios = append(st.Radios, RadioState{Name: r.Label(), Label: r.Label(), Checked: on})
		}
		label, err := router.Query(rt, s.reset.ID(), button.GetLabelRequest, struct{}{})
		if err != nil {
			return State{}, err
		}
		st.ResetLabel = label
		return st, nil
	})
	s.panel.Queue(append(stray, rt.Pool().Drain()...)...)
	return st, err
}

// resetReactor answers reset button presses by restoring the group's
// default selection and relabelling the button with the click count.
type resetReactor struct {
	id    message.ControlID[button.Event]
	group *radio.Group
}

func (r *resetReactor) React(rc *widget.Reaction) error {
	presses := rc.Notes.DrainFilter(func(m message.Msg) bool {
		e, ok := message.Peek(m, r.id)
		_, pressed := e.(button.Pressed)
		return ok && pressed
	})
	var errs []error
	for _, m := range presses {
		e, _ := message.Peek(m, r.id)
		clicks := e.(button.Pressed).Clicks
		if _, err := widget.Drive(rc, "reset", r.protocol(clicks)); err != nil {
			errs = append(errs, fmt.Errorf("reset: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (r *resetReactor) protocol(clicks int) router.Protocol[struct{}] {
	members := r.group.Members()
	return func(rt *router.Router) (struct{}, error) {
		for i, m := range members {
			if _, err := router.Query(rt, m, checkbox.SetStateRequest, i == 0); err != nil {
				return struct{}{}, err
			}
		}
		_, err := router.Query(rt, r.id, button.SetLabelRequest, fmt.Sprintf("Reset (%d)", clicks))
		return struct{}{}, err
	}
}
