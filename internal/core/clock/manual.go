package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
// Due tasks run on the goroutine calling Advance, in firing order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	clock   *Manual
	next    time.Duration
	period  time.Duration
	seq     int
	fn      func()
	stopped bool
}

// NewManual creates a manual clock at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules f once after d.
func (clock *Manual) AfterFunc(d time.Duration, f func()) Timer {
	return clock.schedule(d, 0, f)
}

// Every schedules f every d.
func (clock *Manual) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		d = time.Second
	}
	return clock.schedule(d, d, f)
}

// Elapsed returns the virtual time since creation.
func (clock *Manual) Elapsed() time.Duration {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// Pending returns the number of scheduled tasks that have not been stopped.
func (clock *Manual) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	count := 0
	for _, task := range clock.tasks {
		if !task.stopped {
			count++
		}
	}
	return count
}

// Advance moves virtual time forward by d, running every task that falls due.
func (clock *Manual) Advance(d time.Duration) {
	clock.mu.Lock()
	target := clock.now + d
	clock.mu.Unlock()

	for {
		clock.mu.Lock()
		task := clock.nextDueLocked(target)
		if task == nil {
			clock.now = target
			clock.compactLocked()
			clock.mu.Unlock()
			return
		}
		clock.now = task.next
		if task.period > 0 {
			task.next += task.period
		} else {
			task.stopped = true
		}
		fn := task.fn
		clock.mu.Unlock()

		fn()
	}
}

func (clock *Manual) schedule(d, period time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.seq++
	task := &manualTask{
		clock:  clock,
		next:   clock.now + d,
		period: period,
		seq:    clock.seq,
		fn:     f,
	}
	clock.tasks = append(clock.tasks, task)
	return task
}

func (clock *Manual) nextDueLocked(target time.Duration) *manualTask {
	var due []*manualTask
	for _, task := range clock.tasks {
		if !task.stopped && task.next <= target {
			due = append(due, task)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next != due[j].next {
			return due[i].next < due[j].next
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (clock *Manual) compactLocked() {
	live := clock.tasks[:0]
	for _, task := range clock.tasks {
		if !task.stopped {
			live = append(live, task)
		}
	}
	clock.tasks = live
}

func (task *manualTask) Stop() bool {
	task.clock.mu.Lock()
	defer task.clock.mu.Unlock()
	if task.stopped {
		return false
	}
	task.stopped = true
	return true
}
