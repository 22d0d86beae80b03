// internal/storefront/activity.go
package storefront

import (
	"sync"
	"time"
)

// ActivityType names something a guest did.
type ActivityType string

const (
	ActivityViewProduct   ActivityType = "view_product"
	ActivityViewCategory  ActivityType = "view_category"
	ActivitySearch        ActivityType = "search"
	ActivityClickWhatsApp ActivityType = "click_whatsapp"
	ActivityClickCall     ActivityType = "click_call"
)

// MaxActivities is how many events the log keeps.
const MaxActivities = 50

type Activity struct {
	Type ActivityType `json:"type"`
	Ref  string       `json:"ref"`
	At   time.Time    `json:"at"`
}

// ActivityLog is an in-memory ring of the most recent guest events. It is
// never persisted.
type ActivityLog struct {
	mu     sync.Mutex
	events []Activity
	now    func() time.Time
}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{now: time.Now}
}

func (l *ActivityLog) Record(t ActivityType, ref string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, Activity{Type: t, Ref: ref, At: l.now()})
	if over := len(l.events) - MaxActivities; over > 0 {
		l.events = append(l.events[:0:0], l.events[over:]...)
	}
}

// Events returns the retained events, oldest first.
func (l *ActivityLog) Events() []Activity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Activity(nil), l.events...)
}

func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

func (l *ActivityLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}
