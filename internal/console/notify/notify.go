// Package notify keeps the console's in-session notifications, newest first.
package notify

import (
	"sync"
	"time"

	"sarb.backend/pkg/utils"
)

type Type string

const (
	Success Type = "success"
	Info    Type = "info"
	Warning Type = "warning"
	Error   Type = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

type Center struct {
	mu     sync.Mutex
	items  []Notification
	unread int
	now    func() time.Time
}

func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Add prepends an unread notification and returns it.
func (c *Center) Add(title, message string, typ Type) Notification {
	n := Notification{
		ID:        utils.NewID(),
		Title:     title,
		Message:   message,
		Type:      typ,
		Timestamp: c.now(),
	}

	c.mu.Lock()
	c.items = append([]Notification{n}, c.items...)
	c.unread++
	c.mu.Unlock()
	return n
}

// MarkAsRead marks one notification read. Unknown ids and already read
// notifications leave the unread count alone.
func (c *Center) MarkAsRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			if !c.items[i].Read {
				c.items[i].Read = true
				c.unread--
			}
			return
		}
	}
}

func (c *Center) MarkAllAsRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		c.items[i].Read = true
	}
	c.unread = 0
}

func (c *Center) Clear() {
	c.mu.Lock()
	c.items = nil
	c.unread = 0
	c.mu.Unlock()
}

func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// List returns a copy, newest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}
