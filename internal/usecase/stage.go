package usecase

import "context"

// stage tracks the request in flight for one level of a selection cascade.
// Each request gets a sequence number; a completion may only commit while
// its sequence is still current. Superseding a request cancels it.
type stage struct {
	seq    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// begin supersedes whatever is in flight and issues a new request. The
// returned context keeps parent's values but not its cancellation, so a
// finished HTTP handler does not abort the fetch it started.
func (s *stage) begin(parent context.Context) (context.Context, uint64, chan struct{}) {
	s.invalidate()

	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	s.cancel = cancel
	s.done = make(chan struct{})
	return ctx, s.seq, s.done
}

// invalidate makes the in-flight request stale and cancels it.
func (s *stage) invalidate() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.done = nil
	s.seq++
}

func (s *stage) current(seq uint64) bool {
	return s.seq == seq
}

// finish releases a committed request. Callers must check current first.
func (s *stage) finish(seq uint64) {
	if !s.current(seq) {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.done = nil
}

// inFlight returns the completion channel of the current request, if any.
func (s *stage) inFlight() (chan struct{}, bool) {
	return s.done, s.done != nil
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// waitAll closes once every channel in chans is closed.
func waitAll(chans ...<-chan struct{}) <-chan struct{} {
	switch len(chans) {
	case 0:
		return closedChan()
	case 1:
		return chans[0]
	}

	all := make(chan struct{})
	go func() {
		defer close(all)
		for _, ch := range chans {
			<-ch
		}
	}()
	return all
}

// Wait blocks until done closes or ctx ends.
func Wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
