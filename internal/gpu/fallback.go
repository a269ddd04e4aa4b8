package gpu

import (
	"errors"
	"sync"
	"time"
)

// ComputeMode selects which backend evaluates the SPH density/pressure/
// force pipeline for a step: the CPU SPHSolver or the GPU compute-shader
// variant in shader.go.
type ComputeMode int

const (
	// ModeAuto picks GPU when available and not currently erroring,
	// falling back to CPU otherwise.
	ModeAuto ComputeMode = iota
	// ModeCPU forces the CPU SPHSolver/CollisionSolver path.
	ModeCPU
	// ModeGPU forces the GPU compute-shader path.
	ModeGPU
)

// String returns string representation of ComputeMode
func (m ComputeMode) String() string {
	switch m {
	case ModeAuto:
		return "Auto"
	case ModeCPU:
		return "CPU"
	case ModeGPU:
		return "GPU"
	default:
		return "Unknown"
	}
}

// ProcessorType names which backend a recorded step timing or chosen
// Processor belongs to.
type ProcessorType int

const (
	// ProcessorTypeCPU is the CPU SPHSolver/CollisionSolver path.
	ProcessorTypeCPU ProcessorType = iota
	// ProcessorTypeGPU is the GPU compute-shader path.
	ProcessorTypeGPU
)

// Processor is the backend GetProcessor resolved for the current mode and
// availability state.
type Processor struct {
	Type ProcessorType
}

// GetType returns the processor type
func (p *Processor) GetType() ProcessorType {
	return p.Type
}

// GPUInfo describes the GPU compute-shader backend's availability, as
// reported by the headless stub (no real OpenGL context is ever probed).
type GPUInfo struct {
	Available bool
	Name      string
	Memory    int64
}

// PerformanceStats summarizes the per-step timings RecordPerformance has
// collected for each backend, used by ModeAuto's isGPUFaster choice.
type PerformanceStats struct {
	CPUStats Stats
	GPUStats Stats
}

// Stats aggregates per-step timings (milliseconds) for one backend.
type Stats struct {
	Count       int
	TotalTime   float64
	AverageTime float64
}

// FallbackManager is the backend selector: it resolves whether the CPU
// SPHSolver/CollisionSolver pair or the GPU compute-shader path is chosen,
// and whether the GPU path is currently in an error state that should force
// a CPU fallback. Simulation records each step's CPU timing here; it does
// not consult GetProcessor, and every step runs on the CPU path.
type FallbackManager struct {
	mu              sync.RWMutex
	mode            ComputeMode
	gpuAvailable    bool
	lastError       error
	hasError        bool
	performanceData map[ProcessorType][]float64
}

// NewFallbackManager creates a new fallback manager. gpuAvailable starts,
// and stays, false: this module never probes for a real OpenGL context
// (see shader.go's "OpenGL context not available" stub), so ModeAuto and
// ModeGPU both resolve to the CPU backend until a real GPU backend exists
// to flip this flag.
func NewFallbackManager() *FallbackManager {
	return &FallbackManager{
		mode:            ModeAuto,
		gpuAvailable:    false,
		performanceData: make(map[ProcessorType][]float64),
	}
}

// GetMode returns the current compute mode
func (m *FallbackManager) GetMode() ComputeMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// SetMode sets the compute mode, e.g. from the -no-gpu flag via NewSimulation.
func (m *FallbackManager) SetMode(mode ComputeMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}

// IsGPUAvailable reports whether the compute-shader backend is usable.
func (m *FallbackManager) IsGPUAvailable() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gpuAvailable
}

// GetGPUInfo reports the compute-shader backend's availability for the
// HUD. Name/Memory are placeholders describing the density/pressure/force
// compute pipeline this module would report against a real context.
func (m *FallbackManager) GetGPUInfo() *GPUInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &GPUInfo{
		Available: m.gpuAvailable,
		Name:      "SPH compute shader (headless stub)",
		Memory:    4 * 1024 * 1024 * 1024, // 4GB
	}
}

// GetProcessor resolves which backend the current step should run on,
// given the selected ComputeMode and the GPU's availability/error state.
func (m *FallbackManager) GetProcessor() *Processor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	processorType := ProcessorTypeCPU

	switch m.mode {
	case ModeGPU:
		if m.gpuAvailable && !m.hasError {
			processorType = ProcessorTypeGPU
		}
		// Fall back to CPU if GPU not available or has error
	case ModeCPU:
		processorType = ProcessorTypeCPU
	case ModeAuto:
		// Choose based on availability and performance
		if m.gpuAvailable && !m.hasError {
			// Check if GPU has better performance
			if m.isGPUFaster() {
				processorType = ProcessorTypeGPU
			}
		}
	}

	return &Processor{Type: processorType}
}

// SimulateGPUError injects a GPU compute-shader failure, forcing an
// immediate fallback to CPU if ModeGPU was selected. Called from tests to
// exercise the fallback path without a real driver crash; no input or HUD
// path calls it.
func (m *FallbackManager) SimulateGPUError() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hasError = true
	m.lastError = errors.New("simulated GPU error")

	if m.mode == ModeGPU {
		m.mode = ModeCPU
	}

	return nil
}

// HasError reports whether the GPU backend is in an error state.
func (m *FallbackManager) HasError() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasError
}

// GetLastError returns the most recent GPU backend error, if any.
func (m *FallbackManager) GetLastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastError
}

// ClearErrors clears the GPU backend's error state.
func (m *FallbackManager) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasError = false
	m.lastError = nil
}

// AttemptRecovery tries to bring the GPU backend back after an error,
// e.g. after a dropped/recreated context. Fails immediately if the GPU was
// never available in the first place.
func (m *FallbackManager) AttemptRecovery() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.gpuAvailable {
		return errors.New("GPU not available")
	}

	time.Sleep(10 * time.Millisecond) // mirrors real context re-init latency

	m.hasError = false
	m.lastError = nil

	return nil
}

// RecordPerformance appends one step's elapsed time (ms) for processorType,
// feeding isGPUFaster's ModeAuto decision.
func (m *FallbackManager) RecordPerformance(processorType ProcessorType, timeMs float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.performanceData[processorType] = append(m.performanceData[processorType], timeMs)
}

// GetPerformanceStats summarizes recorded CPU/GPU step timings.
func (m *FallbackManager) GetPerformanceStats() *PerformanceStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &PerformanceStats{}

	// Calculate CPU stats
	if cpuData, ok := m.performanceData[ProcessorTypeCPU]; ok && len(cpuData) > 0 {
		stats.CPUStats = m.calculateStats(cpuData)
	}

	// Calculate GPU stats
	if gpuData, ok := m.performanceData[ProcessorTypeGPU]; ok && len(gpuData) > 0 {
		stats.GPUStats = m.calculateStats(gpuData)
	}

	return stats
}

// calculateStats reduces a slice of per-step timings to count/total/average.
func (m *FallbackManager) calculateStats(data []float64) Stats {
	count := len(data)
	if count == 0 {
		return Stats{}
	}

	total := 0.0
	for _, v := range data {
		total += v
	}

	return Stats{
		Count:       count,
		TotalTime:   total,
		AverageTime: total / float64(count),
	}
}

// isGPUFaster compares recorded average step time between backends;
// ModeAuto only switches to GPU once it has outperformed CPU in practice.
func (m *FallbackManager) isGPUFaster() bool {
	cpuData := m.performanceData[ProcessorTypeCPU]
	gpuData := m.performanceData[ProcessorTypeGPU]

	if len(cpuData) == 0 || len(gpuData) == 0 {
		return false // not enough data yet, default to CPU
	}

	cpuStats := m.calculateStats(cpuData)
	gpuStats := m.calculateStats(gpuData)

	return gpuStats.AverageTime < cpuStats.AverageTime
}
