package core

import "testing"

func TestSchedulerRunsTaskOncePerPeriod(t *testing.T) {
	s := NewScheduler()

	runs := 0
	s.AddTask(3, func() { runs++ })

	s.TimerTick()
	s.TimerTick()
	s.Run()
	if runs != 0 {
		t.Errorf("Task ran before its period elapsed (%d runs)", runs)
	}

	s.TimerTick()
	s.Run()
	if runs != 1 {
		t.Errorf("Expected 1 run after 3 ticks, got %d", runs)
	}

	// No further tick: the due flag was consumed.
	s.Run()
	if runs != 1 {
		t.Errorf("Task ran without a new period elapsing (%d runs)", runs)
	}

	for i := 0; i < 3; i++ {
		s.TimerTick()
	}
	s.Run()
	if runs != 2 {
		t.Errorf("Expected 2 runs after 6 ticks, got %d", runs)
	}
}

func TestSchedulerMultipleTasks(t *testing.T) {
	s := NewScheduler()

	fast, slow := 0, 0
	s.AddTask(1, func() { fast++ })
	s.AddTask(5, func() { slow++ })

	for i := 0; i < 10; i++ {
		s.TimerTick()
		s.Run()
	}

	if fast != 10 {
		t.Errorf("Expected 10 fast runs, got %d", fast)
	}
	if slow != 2 {
		t.Errorf("Expected 2 slow runs, got %d", slow)
	}
}

func TestSchedulerLateRunCatchesUp(t *testing.T) {
	// Ticks may accumulate while the foreground is busy; the task still
	// runs only once per Run pass.
	s := NewScheduler()

	runs := 0
	s.AddTask(2, func() { runs++ })

	for i := 0; i < 6; i++ {
		s.TimerTick()
	}
	s.Run()
	if runs != 1 {
		t.Errorf("Expected a single catch-up run, got %d", runs)
	}
}

func TestSchedulerZeroPeriodClamped(t *testing.T) {
	s := NewScheduler()

	runs := 0
	s.AddTask(0, func() { runs++ })

	s.TimerTick()
	s.Run()
	if runs != 1 {
		t.Errorf("Expected zero period to clamp to every tick, got %d runs", runs)
	}
}
