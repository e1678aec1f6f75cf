// Package watch is the invalidation contract between the storage layer and its
// consumers. Repositories notify the hub after a committed write; subscribers
// receive table-level events and re-query whatever they are rendering. Events
// carry no row data, so a dropped event only delays a re-query, never loses
// state.
package watch

import (
	"io"
	"sync"

	"github.com/gin-gonic/gin"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Table names repositories publish under.
const (
	TableTeams          = "teams"
	TablePlayers        = "players"
	TableObjectives     = "team_objectives"
	TableTrains         = "trains"
	TableTrainTasks     = "train_tasks"
	TableAbilityRecords = "ability_records"
)

// Event identifies a changed table. Table-level granularity: consumers
// re-query the whole result set, matching live-query semantics.
type Event struct {
	Table string `json:"table"`
	Op    Op     `json:"op"`
}

type subscriber struct {
	tables map[string]bool // empty means all tables
	ch     chan Event
}

// Hub fans out change events to subscribers. Notify never blocks: each
// subscriber has a small buffer and events are dropped when it is full.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscriber)}
}

// Subscribe registers interest in the given tables (none means every table).
// The returned cancel func must be called to release the subscription; it
// closes the channel.
func (h *Hub) Subscribe(tables ...string) (<-chan Event, func()) {
	sub := &subscriber{
		tables: make(map[string]bool, len(tables)),
		ch:     make(chan Event, 16),
	}
	for _, t := range tables {
		sub.tables[t] = true
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Notify publishes a change for a table. Callers invoke it after the write
// has committed, never before.
func (h *Hub) Notify(table string, op Op) {
	ev := Event{Table: table, Op: op}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if len(sub.tables) > 0 && !sub.tables[table] {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// Subscriber is behind; it will re-query on the next event.
		}
	}
}

// Default is the process-wide hub, mirroring the global config.DB handle.
var Default = NewHub()

func Notify(table string, op Op)                      { Default.Notify(table, op) }
func Subscribe(tables ...string) (<-chan Event, func()) { return Default.Subscribe(tables...) }

// StreamHandler serves the subscription as a server-sent-event stream of
// invalidation events. The stream ends when the client disconnects.
func StreamHandler(hub *Hub, tables ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, cancel := hub.Subscribe(tables...)
		defer cancel()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case ev, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent("invalidate", ev)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
