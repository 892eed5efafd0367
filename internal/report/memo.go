package report

import "sync"

// Memo caches the cards of the most recently rendered text. A lookup with any
// other text re-renders and replaces the cached value.
type Memo struct {
	mu    sync.Mutex
	text  string
	cards []Card
	valid bool
}

// Render returns the cards for text, reusing the previous result when text is
// identical to the last call.
func (m *Memo) Render(text string) []Card {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.text == text {
		return m.cards
	}
	m.text = text
	m.cards = Render(text)
	m.valid = true
	return m.cards
}

// Reset drops the cached value.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.text = ""
	m.cards = nil
	m.valid = false
}
