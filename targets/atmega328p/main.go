//go:build avr

package main

import "github.com/bluezephyr/bitloom-avr/core"

const (
	consoleTaskPeriodMS   = 5
	heartbeatTaskPeriodMS = 500
)

func main() {
	uart := initUART()
	twi := initTWI()
	core.SetPinDriver(pinDriver{})

	sched := core.NewScheduler()
	initTimer(sched)

	led, err := core.NewDigitalOut(ledPin, false)
	if err != nil {
		uart.WriteLine("err led init failed")
	}

	console := core.NewConsole(twi, uart)
	sched.AddTask(consoleTaskPeriodMS, console.Task)
	if led != nil {
		sched.AddTask(heartbeatTaskPeriodMS, func() {
			if err := led.Toggle(); err != nil {
				uart.WriteLine("err heartbeat: " + err.Error())
			}
		})
	}

	uart.WriteLine("bitloom-avr ready")

	for {
		sched.Run()
	}
}
