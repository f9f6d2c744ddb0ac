// ABOUTME: Radio group reactor keeping a set of checkboxes mutually exclusive.
// ABOUTME: OnInit and OnChange are straight-line protocols over checkbox SetState/GetState queries.
package radio

import (
	"errors"
	"fmt"

	"github.com/2389-research/yorool/message"
	"github.com/2389-research/yorool/router"
	"github.com/2389-research/yorool/widget"
	"github.com/2389-research/yorool/widget/checkbox"
)

// Group is a list of checkbox addresses of which at most one is checked.
// The first member is the default selection.
type Group struct {
	members []message.ControlID[checkbox.Event]
}

// NewGroup creates a group over ids in order.
func NewGroup(ids ...message.ControlID[checkbox.Event]) *Group {
	g := &Group{}
	for _, id := range ids {
		g.Add(id)
	}
	return g
}

// Add appends id unless it is already a member.
func (g *Group) Add(id message.ControlID[checkbox.Event]) {
	if g.Contains(id) {
		return
	}
	g.members = append(g.members, id)
}

// Remove drops id. It reports whether id was a member.
func (g *Group) Remove(id message.ControlID[checkbox.Event]) bool {
	for i, m := range g.members {
		if m == id {
			g.members = append(g.members[:i:i], g.members[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports membership.
func (g *Group) Contains(id message.ControlID[checkbox.Event]) bool {
	for _, m := range g.members {
		if m == id {
			return true
		}
	}
	return false
}

// Members returns a copy of the member list.
func (g *Group) Members() []message.ControlID[checkbox.Event] {
	return append([]message.ControlID[checkbox.Event](nil), g.members...)
}

// OnInit sets c to checked iff it is the group's first member.
func (g *Group) OnInit(c message.ControlID[checkbox.Event]) router.Protocol[struct{}] {
	first := len(g.members) > 0 && g.members[0] == c
	return func(rt *router.Router) (struct{}, error) {
		_, err := router.Query(rt, c, checkbox.SetStateRequest, first)
		return struct{}{}, err
	}
}

// OnChange restores exclusivity after c was pressed. If c is now checked
// every other member is cleared; a press that unchecked c is undone.
func (g *Group) OnChange(c message.ControlID[checkbox.Event]) router.Protocol[struct{}] {
	members := g.Members()
	return func(rt *router.Router) (struct{}, error) {
		on, err := router.Query(rt, c, checkbox.GetStateRequest, struct{}{})
		if err != nil {
			return struct{}{}, err
		}
		if on {
			for _, m := range members {
				if m == c {
					continue
				}
				if _, err := router.Query(rt, m, checkbox.SetStateRequest, false); err != nil {
					return struct{}{}, err
				}
			}
		}
		_, err = router.Query(rt, c, checkbox.SetStateRequest, true)
		return struct{}{}, err
	}
}

// React drains Init and Pressed notifications from members and runs the
// matching protocol for each, in pool order.
func (g *Group) React(rc *widget.Reaction) error {
	notes := rc.Notes.DrainFilter(func(m message.Msg) bool {
		_, _, ok := g.notification(m)
		return ok
	})
	var errs []error
	for _, m := range notes {
		id, e, _ := g.notification(m)
		var proto router.Protocol[struct{}]
		var label string
		switch e.(type) {
		case checkbox.Init:
			proto, label = g.OnInit(id), "radio.init "+id.String()
		case checkbox.Pressed:
			proto, label = g.OnChange(id), "radio.change "+id.String()
		}
		if _, err := widget.Drive(rc, label, proto); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
	}
	return errors.Join(errs...)
}

func (g *Group) notification(m message.Msg) (message.ControlID[checkbox.Event], checkbox.Event, bool) {
	for _, id := range g.members {
		if e, ok := message.Peek(m, id); ok && checkbox.IsNotification(e) {
			return id, e, true
		}
	}
	return message.ControlID[checkbox.Event]{}, nil, false
}
