package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stage names one step of the frame pipeline.
type Stage int

const (
	StageBackdrop Stage = iota
	StageCast
	StageRasterize
	StageComposite
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageBackdrop:
		return "backdrop"
	case StageCast:
		return "cast"
	case StageRasterize:
		return "rasterize"
	case StageComposite:
		return "composite"
	}
	return "unknown"
}

// LowFPSThreshold is the frame rate below which an alert is raised.
const LowFPSThreshold = 30

// PerformanceMonitor tracks frame and pipeline stage timings. Writes come
// from the frame goroutine; readers such as a HUD may call the getters from
// anywhere.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Per-stage time of the last frame, nanoseconds
	stageTime [stageCount]atomic.Uint64

	// Last frame workload
	columns atomic.Int32
	sprites atomic.Int32

	// Statistics
	mutex        sync.RWMutex
	avgFrameTime float64 // exponential moving average, nanoseconds
	startTime    time.Time

	// Configuration
	frameAverage   bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		frameAverage:   true,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.RecordFrame(time.Since(ft.startTime))
}

// RecordFrame stores a measured frame duration.
func (pm *PerformanceMonitor) RecordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	count := pm.frameCount.Add(1)

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if !pm.frameAverage {
		return
	}
	if count == 1 || pm.avgFrameTime == 0 {
		pm.avgFrameTime = float64(d.Nanoseconds())
	} else {
		pm.avgFrameTime = pm.avgFrameTime*0.9 + float64(d.Nanoseconds())*0.1
	}
}

// StageTimer helps measure one pipeline stage
type StageTimer struct {
	monitor   *PerformanceMonitor
	stage     Stage
	startTime time.Time
}

// StartStage begins timing a stage
func (pm *PerformanceMonitor) StartStage(stage Stage) *StageTimer {
	return &StageTimer{
		monitor:   pm,
		stage:     stage,
		startTime: time.Now(),
	}
}

// End completes stage timing
func (st *StageTimer) End() {
	if st.stage < 0 || st.stage >= stageCount {
		return
	}
	st.monitor.stageTime[st.stage].Store(uint64(time.Since(st.startTime).Nanoseconds()))
}

// UpdateWorkload records how many columns and sprites the last frame drew.
func (pm *PerformanceMonitor) UpdateWorkload(columns, sprites int) {
	pm.columns.Store(int32(columns))
	pm.sprites.Store(int32(sprites))
}

// FrameMetrics is a snapshot of the monitor
type FrameMetrics struct {
	FramesPerSecond float64
	FrameCount      uint64
	FrameTime       time.Duration
	AvgFrameTime    time.Duration
	StageTimes      map[Stage]time.Duration
	Columns         int
	Sprites         int
	MemoryUsageMB   uint64
	Uptime          time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	start := pm.startTime
	pm.mutex.RUnlock()

	// Calculate FPS
	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = 1000000000.0 / float64(frameTime) // Convert nanoseconds to FPS
	}

	stages := make(map[Stage]time.Duration, stageCount)
	for s := Stage(0); s < stageCount; s++ {
		stages[s] = time.Duration(pm.stageTime[s].Load())
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FramesPerSecond: fps,
		FrameCount:      pm.frameCount.Load(),
		FrameTime:       time.Duration(frameTime),
		AvgFrameTime:    time.Duration(avg),
		StageTimes:      stages,
		Columns:         int(pm.columns.Load()),
		Sprites:         int(pm.sprites.Load()),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
		Uptime:          time.Since(start),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	// Check frame rate
	frameTime := pm.frameTime.Load()
	if frameTime > 0 {
		fps := 1000000000.0 / float64(frameTime)
		if fps < LowFPSThreshold {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: LowFPSThreshold,
				Timestamp: currentTime,
			})
		}
	}

	// Check memory usage
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > 500 { // Alert if memory usage exceeds 500MB
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: 500,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// EnableFrameAverage enables/disables the moving frame time average.
// Disabling clears it; the next recorded frame after enabling seeds it.
func (pm *PerformanceMonitor) EnableFrameAverage(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.frameAverage = enabled
	if !enabled {
		pm.avgFrameTime = 0
	}
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	for i := range pm.stageTime {
		pm.stageTime[i].Store(0)
	}
	pm.columns.Store(0)
	pm.sprites.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
