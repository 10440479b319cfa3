// Package controller hosts the single coordinator between the stores and
// the presentation layer. It owns the navigation state (active page, edit
// target, banner text), subscribes to all three stores, and re-derives the
// complete view model from current store state on every notification and
// after every navigation. There is no incremental patching; handlers always
// serve the latest full snapshot.
package controller

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/eventdesk/eventdesk/internal/metrics"
	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/notify"
	"github.com/eventdesk/eventdesk/internal/store"
)

// Page is the fixed set of pages the UI can show.
type Page string

const (
	PageEvents       Page = "events"
	PageNewEvent     Page = "newEvent" // doubles as the edit form
	PageParticipants Page = "participants"
	PageTags         Page = "tags"
)

// View is the fully derived state of the visible UI.
type View struct {
	Page         Page
	Banner       string
	Filters      model.Filters
	Events       []model.Event
	Selected     *model.Event
	EditEvent    *model.Event
	Participants []model.Participant
	Tags         []model.Tag
	Statuses     []string
}

// TagLabel resolves a tag id for display; unknown ids render as #id.
func (v View) TagLabel(id int64) string {
	for _, t := range v.Tags {
		if t.ID == id {
			return t.Label
		}
	}
	return fmt.Sprintf("#%d", id)
}

// ParticipantName resolves a participant id for display.
func (v View) ParticipantName(id int64) string {
	for _, p := range v.Participants {
		if p.ID == id {
			return p.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

// Controller wires the stores to the UI.
type Controller struct {
	events       *store.EventStore
	participants *store.ParticipantStore
	tags         *store.TagStore
	logger       *zap.SugaredLogger

	mu        sync.Mutex
	page      Page
	editEvent *model.Event
	banner    string
	view      View
}

// New subscribes to all three stores and derives the initial view.
func New(es *store.EventStore, ps *store.ParticipantStore, ts *store.TagStore, logger *zap.SugaredLogger) *Controller {
	c := &Controller{
		events:       es,
		participants: ps,
		tags:         ts,
		logger:       logger,
		page:         PageEvents,
	}
	for _, n := range []*notify.Notifier{es.Notifier(), ps.Notifier(), ts.Notifier()} {
		n.Subscribe(notify.Loaded, func(notify.Signal) { c.refresh() })
		n.Subscribe(notify.Changed, func(notify.Signal) { c.refresh() })
		n.Subscribe(notify.Banner, func(sig notify.Signal) { c.showBanner(sig.Text) })
	}
	c.refresh()
	return c
}

// View returns the latest derived snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Navigate switches to p, clearing any in-progress edit and the banner.
func (c *Controller) Navigate(p Page) {
	c.mu.Lock()
	c.page = p
	c.editEvent = nil
	c.banner = ""
	c.mu.Unlock()
	c.refresh()
}

// EditSelected captures the currently selected event as the edit target and
// switches to the form page.
func (c *Controller) EditSelected() {
	sel := c.events.Selected()
	c.mu.Lock()
	c.editEvent = sel
	c.page = PageNewEvent
	c.mu.Unlock()
	c.refresh()
}

// SubmitEventForm dispatches to update when the draft carries an id and to
// add otherwise, then returns to the events page. The edit target is
// cleared either way; the banner from the store outcome is kept.
func (c *Controller) SubmitEventForm(d model.EventDraft) {
	if _, ok := model.ParseID(d.ID); ok {
		_ = c.events.Update(d)
	} else {
		_, _ = c.events.Add(d)
	}
	c.closeForm()
}

// CancelEdit abandons the form and returns to the events page.
func (c *Controller) CancelEdit() {
	c.closeForm()
}

func (c *Controller) closeForm() {
	c.mu.Lock()
	c.editEvent = nil
	c.page = PageEvents
	c.mu.Unlock()
	c.refresh()
}

// SetFilters and SelectEvent pass straight through; the store's changed
// notification triggers the rebuild.
func (c *Controller) SetFilters(p model.FilterPatch) { c.events.SetFilters(p) }
func (c *Controller) SelectEvent(id any)             { c.events.Select(id) }

// AddEvent and DeleteEvent act on the event store directly. The yes/no
// confirmation for deletes is the handler layer's job.
func (c *Controller) AddEvent(d model.EventDraft) { _, _ = c.events.Add(d) }
func (c *Controller) DeleteEvent(id any)          { _ = c.events.Delete(id) }

func (c *Controller) AddParticipant(d model.ParticipantDraft) { _, _ = c.participants.Add(d) }
func (c *Controller) AddTag(d model.TagDraft)                 { _, _ = c.tags.Add(d) }
func (c *Controller) UpdateTag(d model.TagDraft)              { _ = c.tags.Update(d) }

func (c *Controller) UpdateParticipants(eventID any, ids []any) {
	_ = c.events.UpdateParticipants(eventID, ids)
}

// DeleteParticipant blocks the delete with a message when any event still
// references the participant; the store method is not invoked in that case.
func (c *Controller) DeleteParticipant(id any) {
	pid, ok := model.ParseID(id)
	if !ok {
		return
	}
	if c.events.ReferencesParticipant(pid) {
		c.showBanner("This participant cannot be deleted while an event uses them.")
		return
	}
	_ = c.participants.Delete(pid)
}

// DeleteTag mirrors DeleteParticipant for tags.
func (c *Controller) DeleteTag(id any) {
	tid, ok := model.ParseID(id)
	if !ok {
		return
	}
	if c.events.ReferencesTag(tid) {
		c.showBanner("This tag cannot be deleted while an event uses it.")
		return
	}
	_ = c.tags.Delete(tid)
}

func (c *Controller) showBanner(text string) {
	c.mu.Lock()
	c.banner = text
	c.mu.Unlock()
	c.refresh()
}

// refresh rebuilds the whole view model from current store state. Store
// reads happen under the controller lock; stores never call back into the
// controller synchronously from a read, so the lock order is safe.
func (c *Controller) refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = View{
		Page:         c.page,
		Banner:       c.banner,
		Filters:      c.events.Filters(),
		Events:       c.events.FilteredEvents(),
		Selected:     c.events.Selected(),
		EditEvent:    c.editEvent,
		Participants: c.participants.All(),
		Tags:         c.tags.All(),
		Statuses:     model.Statuses,
	}
	metrics.RendersTotal.WithLabelValues(string(c.page)).Inc()
}
