package status

import "sync/atomic"

// MaxLabelLen fits a canonical UUID
const MaxLabelLen = 36

// Label is an atomic short string; zero value reads ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncating to MaxLabelLen
func (l *Label) Store(v string) {
	if len(v) > MaxLabelLen {
		v = v[:MaxLabelLen]
	}
	l.ptr.Store(&v)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
