package imagedata

import (
	"sync"

	"github.com/google/uuid"
)

// Preview is the raw content behind a preview reference.
type Preview struct {
	MIMEType string
	Data     []byte
}

// Previews is an in-memory registry of revocable preview references. The
// references stay valid until revoked and are independent of the encoded
// payload handed to the model.
type Previews struct {
	mu    sync.RWMutex
	items map[string]Preview
}

func NewPreviews() *Previews {
	return &Previews{items: make(map[string]Preview)}
}

// Create registers data and returns its reference.
func (p *Previews) Create(mimeType string, data []byte) string {
	id := uuid.NewString()
	p.mu.Lock()
	p.items[id] = Preview{MIMEType: mimeType, Data: data}
	p.mu.Unlock()
	return id
}

func (p *Previews) Get(id string) (Preview, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	item, ok := p.items[id]
	return item, ok
}

// Revoke drops the reference. Unknown or empty ids are ignored.
func (p *Previews) Revoke(id string) {
	if id == "" {
		return
	}
	p.mu.Lock()
	delete(p.items, id)
	p.mu.Unlock()
}

func (p *Previews) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}
