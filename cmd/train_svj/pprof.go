package main

import "os"
import "os/signal"
import "runtime/pprof"
import "syscall"

// startProfile collects a CPU profile into default.pgo until the process is
// interrupted or stop is called.
func startProfile() (stop func()) {
	f, err := os.Create("default.pgo")
	if err != nil {
		return func() {}
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return func() {}
	}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	stop = func() {
		select {
		case <-done:
		default:
			close(done)
			pprof.StopCPUProfile()
			f.Close()
		}
	}
	go func() {
		<-sigChan
		stop()
		os.Exit(1)
	}()
	return stop
}
