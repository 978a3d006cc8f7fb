package logger

import (
	"sync"
	"testing"
)

func TestGetInitializes(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get returned nil before Init")
	}
	ForRun("run-1").Debugw("tagged", "k", "v")
	Sync()
}

func TestGetConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	loggers := make([]any, 8)
	for i := range loggers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loggers[i] = Get()
		}(i)
	}
	wg.Wait()
	for i, l := range loggers {
		if l != loggers[0] {
			t.Fatalf("goroutine %d got a different logger", i)
		}
	}
}
