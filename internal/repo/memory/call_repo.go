package memory

import (
	"sync"
	"time"
)

// Call is the registry record for one active media stream.
type Call struct {
	ID         string
	StreamSid  string
	CallSid    string
	AccountSid string
	StartedAt  time.Time
	MediaIn    int64
	MediaOut   int64
}

// CallRepo is an in-memory registry of active calls, keyed by streamSid.
// Durable call state belongs to external systems; this exists only for
// process-wide status fan-out.
type CallRepo struct {
	m sync.Map
}

func NewCallRepo() *CallRepo {
	return &CallRepo{}
}

func (r *CallRepo) Save(c *Call) {
	r.m.Store(c.StreamSid, c)
}

func (r *CallRepo) Get(streamSid string) (*Call, bool) {
	v, ok := r.m.Load(streamSid)
	if !ok {
		return nil, false
	}
	return v.(*Call), true
}

func (r *CallRepo) IncMediaIn(streamSid string) {
	v, ok := r.m.Load(streamSid)
	if !ok {
		return
	}
	c := v.(*Call)
	c.MediaIn++
	r.m.Store(streamSid, c)
}

func (r *CallRepo) IncMediaOut(streamSid string) {
	v, ok := r.m.Load(streamSid)
	if !ok {
		return
	}
	c := v.(*Call)
	c.MediaOut++
	r.m.Store(streamSid, c)
}

func (r *CallRepo) Remove(streamSid string) {
	r.m.Delete(streamSid)
}

func (r *CallRepo) List() []*Call {
	var out []*Call
	r.m.Range(func(_, v interface{}) bool {
		out = append(out, v.(*Call))
		return true
	})
	return out
}
