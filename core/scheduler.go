// Cooperative task scheduler.
//
// Tasks run to completion in foreground context; the only preemption in the
// system is the hardware interrupt level. The millisecond timer interrupt
// calls TimerTick to decrement the task countdowns, and the main loop calls
// Run to execute whatever became due.
package core

// TaskFunc is a task body. It must return promptly; a task that needs to
// wait for something polls for it across invocations instead of spinning.
type TaskFunc func()

type task struct {
	periodMS  uint16
	countdown uint16
	due       bool
	run       TaskFunc
}

// Scheduler holds the task table. Create one per firmware image.
type Scheduler struct {
	tasks []task
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddTask registers a task to run every periodMS milliseconds. The first
// run happens one full period after registration. Tasks cannot be removed;
// the table is fixed at bring-up, before the timer starts ticking.
func (s *Scheduler) AddTask(periodMS uint16, run TaskFunc) {
	if periodMS == 0 {
		periodMS = 1
	}
	s.tasks = append(s.tasks, task{
		periodMS:  periodMS,
		countdown: periodMS,
		run:       run,
	})
}

// TimerTick advances all task countdowns by one millisecond. It is called
// from the timer compare-match interrupt and only flips flags, so it always
// completes in bounded time.
func (s *Scheduler) TimerTick() {
	for i := range s.tasks {
		t := &s.tasks[i]
		t.countdown--
		if t.countdown == 0 {
			t.countdown = t.periodMS
			t.due = true
		}
	}
}

// Run executes every task marked due. Called from the main loop. The due
// flag is consumed under masked interrupts since TimerTick writes it from
// ISR context.
func (s *Scheduler) Run() {
	for i := range s.tasks {
		t := &s.tasks[i]

		state := disableInterrupts()
		due := t.due
		t.due = false
		restoreInterrupts(state)

		if due {
			t.run()
		}
	}
}
