//go:build avr

package main

import (
	"device/avr"
	"runtime/interrupt"

	"github.com/bluezephyr/bitloom-avr/core"
)

// 9600 8N1 at the 16 MHz system clock.
const (
	cpuFrequency    = 16000000
	uartBaudRate    = 9600
	uartBaudSetting = cpuFrequency/16/uartBaudRate - 1

	uartRxCapacity = 64
)

// uartHardware implements core.UARTHardware on USART0. Transmission is
// busy-wait on the data register empty flag; reception is interrupt
// driven through the core receive buffer.
type uartHardware struct{}

func (uartHardware) WriteByte(b byte) {
	for avr.UCSR0A.Get()&avr.UCSR0A_UDRE0 == 0 {
	}
	avr.UDR0.Set(b)
}

var uart0 *core.UART

func initUART() *core.UART {
	core.SetUARTHardware(uartHardware{})
	uart0 = core.NewUART(uartRxCapacity)

	avr.UBRR0H.Set(uint8(uartBaudSetting >> 8))
	avr.UBRR0L.Set(uint8(uartBaudSetting & 0xFF))
	avr.UCSR0C.Set(avr.UCSR0C_UCSZ01 | avr.UCSR0C_UCSZ00) // 8N1
	avr.UCSR0B.Set(avr.UCSR0B_RXEN0 | avr.UCSR0B_TXEN0 | avr.UCSR0B_RXCIE0)

	interrupt.New(avr.IRQ_USART_RX, handleUARTInterrupt)
	return uart0
}

func handleUARTInterrupt(interrupt.Interrupt) {
	// Reading UDR0 clears the RXC0 flag.
	uart0.ReceiveByte(avr.UDR0.Get())
}
