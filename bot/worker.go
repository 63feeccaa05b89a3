package bot

import "sync"

// workerPool runs submitted tasks concurrently, holding at most size tasks
// in flight. A size of zero or less removes the bound, matching the default
// fan-out of a handful of attachments per message.
type workerPool struct {
	slots chan struct{}
	wg    sync.WaitGroup
}

func newWorkerPool(size int) *workerPool {
	p := &workerPool{}
	if size > 0 {
		p.slots = make(chan struct{}, size)
	}
	return p
}

// Submit dispatches a task without blocking the caller: the slot is taken
// inside the goroutine, so the whole batch can be issued before any of it
// completes.
func (p *workerPool) Submit(task func()) {
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		if p.slots != nil {
			p.slots <- struct{}{}
			defer func() { <-p.slots }()
		}
		task()
	}()
}

// Wait blocks until every submitted task has finished.
func (p *workerPool) Wait() {
	p.wg.Wait()
}
