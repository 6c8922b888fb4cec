package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"

	"github.com/bluezephyr/bitloom-avr/host/board"
)

var (
	device = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud   = flag.Int("baud", 9600, "Baud rate")
)

func main() {
	flag.Parse()

	fmt.Println("BitLoom AVR Console")
	fmt.Println("===================")

	fmt.Printf("Connecting to board on %s...\n", *device)
	conn, err := board.Connect(*device, *baud)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Print board output (responses, boot banner, sensor tasks) as it
	// arrives.
	go func() {
		for line := range conn.Lines() {
			fmt.Printf("< %s\n", line)
		}
	}()

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}

		switch tokens[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		default:
			// Everything else goes to the board verbatim; it answers
			// with its own ok/err lines.
			if err := conn.Send(strings.Join(tokens, " ")); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("\nLocal commands:")
	fmt.Println("  help           - Show this help message")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println("\nBoard commands (forwarded verbatim):")
	fmt.Println("  status                      - Last transaction result and bus status code")
	fmt.Println("  pin <n> <0|1>               - Drive a port B pin low or high")
	fmt.Println("  i2cw <addr> <reg> <data...> - Write bytes to a slave register")
	fmt.Println("  i2cr <addr> <reg> <len>     - Read bytes from a slave register")
	fmt.Println("\nNumbers accept decimal or 0x-prefixed hex.")
	fmt.Println()
}
