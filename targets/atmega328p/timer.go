//go:build avr

package main

import (
	"device/avr"
	"runtime/interrupt"

	"github.com/bluezephyr/bitloom-avr/core"
)

// Timer0 in CTC mode provides the 1 ms scheduler tick:
// 16 MHz / 64 prescaler / 250 counts = 1 kHz.
const timerCompareValue = 249

var tickScheduler *core.Scheduler

func initTimer(s *core.Scheduler) {
	tickScheduler = s

	avr.TCCR0A.Set(avr.TCCR0A_WGM01) // CTC, OCR0A is TOP
	avr.OCR0A.Set(timerCompareValue)
	avr.TIMSK0.Set(avr.TIMSK0_OCIE0A)
	avr.TCCR0B.Set(avr.TCCR0B_CS01 | avr.TCCR0B_CS00) // clk/64, starts the timer

	interrupt.New(avr.IRQ_TIMER0_COMPA, handleTimerInterrupt)
}

func handleTimerInterrupt(interrupt.Interrupt) {
	tickScheduler.TimerTick()
}
