// Package focus tracks which panel owns directional input and keeps the
// active tab in lockstep with it.
package focus

import "featboard/internal/logging/events"

// Panel indexes the three logical UI regions.
type Panel int

const (
	PanelNavigator Panel = iota
	PanelDetail
	PanelTaskList

	panelCount = 3
)

func (p Panel) String() string {
	switch p {
	case PanelNavigator:
		return "navigator"
	case PanelDetail:
		return "detail"
	case PanelTaskList:
		return "tasks"
	default:
		return "unknown"
	}
}

// Tab names the two content tabs shadowing the detail/task panels.
type Tab int

const (
	TabDetail Tab = iota
	TabTasks
)

func (t Tab) String() string {
	if t == TabTasks {
		return "tasks"
	}
	return "detail"
}

// Controller owns the focus index and the companion tab value. Scroll resets
// happen through the supplied hook so the owning model keeps its offsets in
// one place.
type Controller struct {
	current     Panel
	tab         Tab
	resetScroll func(Panel)
}

// New builds a controller starting on the navigator. resetScroll may be nil.
func New(resetScroll func(Panel)) *Controller {
	return &Controller{resetScroll: resetScroll}
}

// Current returns the panel owning input.
func (c *Controller) Current() Panel { return c.current }

// Tab returns the active content tab.
func (c *Controller) Tab() Tab { return c.tab }

// Advance cycles focus forward, wrapping after the last panel.
func (c *Controller) Advance() Panel {
	return c.apply(Panel((int(c.current) + 1) % panelCount))
}

// StepLeft moves focus one panel left, clamping at the navigator.
func (c *Controller) StepLeft() Panel {
	next := c.current - 1
	if next < PanelNavigator {
		next = PanelNavigator
	}
	return c.apply(next)
}

// StepRight moves focus one panel right, clamping at the task list.
func (c *Controller) StepRight() Panel {
	next := c.current + 1
	if next > PanelTaskList {
		next = PanelTaskList
	}
	return c.apply(next)
}

// apply is the single transition point: the tab invariant and the scroll
// reset both live here, never at call sites. Entering the navigator keeps
// its state; it is driven by selection, not viewport scroll.
func (c *Controller) apply(next Panel) Panel {
	if next == c.current {
		return c.current
	}
	prev := c.current
	c.current = next
	switch next {
	case PanelDetail:
		c.tab = TabDetail
		c.reset(PanelDetail)
	case PanelTaskList:
		c.tab = TabTasks
		c.reset(PanelTaskList)
	}
	events.Focus.Change(int(prev), int(next), c.tab.String())
	return c.current
}

func (c *Controller) reset(p Panel) {
	if c.resetScroll != nil {
		c.resetScroll(p)
	}
}
