package imagedata

import "testing"

func TestPreviewsLifecycle(t *testing.T) {
	p := NewPreviews()
	first := p.Create("image/png", []byte{1})
	second := p.Create("image/jpeg", []byte{2})
	if first == second {
		t.Fatalf("Create() returned duplicate ids")
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}

	p.Revoke(first)
	if _, ok := p.Get(first); ok {
		t.Fatalf("Get(%q) succeeded after Revoke", first)
	}
	item, ok := p.Get(second)
	if !ok || item.MIMEType != "image/jpeg" {
		t.Fatalf("Get(%q) = %+v, %v", second, item, ok)
	}

	p.Revoke("")
	p.Revoke("unknown")
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
}
