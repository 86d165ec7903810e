package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/scoped"
	"github.com/wippyai/scoped/errors"
)

func main() {
	var (
		count       = flag.Int("n", 3, "Number of callbacks to register")
		events      = flag.Int("events", 2, "Number of events to fire through the bus")
		leak        = flag.Bool("leak", false, "Abandon registrations instead of closing them")
		stale       = flag.Bool("stale", false, "Invoke a retained trampoline after the scope ends")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		scoped.SetLogger(log)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*count, *events, *leak, *stale); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(count, events int, leak, stale bool) error {
	b := newBus()
	var retained func(string) string

	scoped.Enter(func(s *scoped.Scope) struct{} {
		var regs []*scoped.Registration
		for i := 0; i < count; i++ {
			name := fmt.Sprintf("cb%d", i)
			reg := scoped.Register(s,
				func(msg string) string { return name + ": " + strings.ToUpper(msg) },
				func(cb func(string) string) int {
					retained = cb
					return b.register(cb)
				},
				b.deregister,
			)
			regs = append(regs, reg)
		}

		fmt.Printf("Scope %s: %d registrations, bus holds %d\n", s.ID(), s.Len(), b.len())

		for i := 0; i < events; i++ {
			for _, out := range b.fire(fmt.Sprintf("event-%d", i)) {
				fmt.Println("  " + out)
			}
		}

		if leak {
			fmt.Println("Abandoning registrations; teardown happens at scope end")
		} else {
			for _, reg := range regs {
				reg.Close()
			}
			fmt.Printf("Closed all registrations, bus holds %d\n", b.len())
		}
		return struct{}{}
	})

	fmt.Printf("Scope ended, bus holds %d\n", b.len())

	if stale && retained != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					if err, ok := r.(*errors.Error); ok {
						fmt.Printf("Stale invocation refused: %v\n", err)
						return
					}
					panic(r)
				}
			}()
			retained("too late")
		}()
	}

	return nil
}
