package system

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ErrInsufficientMemory means a buffered render would not fit in RAM
var ErrInsufficientMemory = errors.New("недостаточно памяти")

// memoryShare is the part of available RAM a buffered render may take
const memoryShare = 0.8

// EnsureDir creates dir and its parents if needed
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("создание директории %s: %w", dir, err)
	}
	return nil
}

// DefaultWorkers returns the number of logical CPUs
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ClampWorkers keeps the worker count within [1, frames]
func ClampWorkers(workers, frames int) int {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if frames > 0 && workers > frames {
		workers = frames
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// AvailableMemory returns the RAM available for new allocations
func AvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("чтение памяти: %w", err)
	}
	return vm.Available, nil
}

// CheckMemory fails if need bytes exceed the allowed share of available RAM.
// When memory cannot be read the check passes.
func CheckMemory(need uint64) error {
	avail, err := AvailableMemory()
	if err != nil {
		return nil
	}
	return checkMemory(need, avail)
}

func checkMemory(need, avail uint64) error {
	if float64(need) > float64(avail)*memoryShare {
		return fmt.Errorf("%w: нужно %d МБ, доступно %d МБ", ErrInsufficientMemory, need>>20, avail>>20)
	}
	return nil
}
