// internal/upload/progress.go
package upload

import "sync"

// Progress tracks in-flight uploads for one form session. Controls that
// start uploads should stay disabled while Active is above zero.
type Progress struct {
	mu       sync.RWMutex
	active   int
	percents map[string]float64
	order    []string
}

func NewProgress() *Progress {
	return &Progress{percents: make(map[string]float64)}
}

func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active++
}

func (p *Progress) Decrement() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active > 0 {
		p.active--
	}
}

func (p *Progress) Active() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

// Percent averages every file tracked in the current batch. It is zero
// before anything has been tracked.
func (p *Progress) Percent() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.order) == 0 {
		return 0
	}
	var sum float64
	for _, key := range p.order {
		sum += p.percents[key]
	}
	return sum / float64(len(p.order))
}

// File returns the last reported percentage for key.
func (p *Progress) File(key string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.percents[key]
	return v, ok
}

func (p *Progress) track(keys []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.percents = make(map[string]float64, len(keys))
	p.order = append([]string(nil), keys...)
	for _, key := range keys {
		p.percents[key] = 0
	}
}

func (p *Progress) set(key string, percent float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.percents[key]; !ok {
		return
	}
	if percent > 100 {
		percent = 100
	}
	p.percents[key] = percent
}
