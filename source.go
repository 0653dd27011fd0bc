package main

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// FuncSource adapts a sampling function to the Source contract. The
// sample is taken by Update; the accessors only report the stored state,
// so a render never blocks on the operating system.
type FuncSource struct {
	ref       string
	label     string
	unit      string
	precision int
	min, max  float64
	hasBounds bool
	read      func() (float64, bool)

	value     float64
	available bool
	mutex     sync.RWMutex
}

func NewFuncSource(ref, label, unit string, precision int, read func() (float64, bool)) *FuncSource {
	return &FuncSource{ref: ref, label: label, unit: unit, precision: precision, read: read}
}

func (s *FuncSource) WithBounds(min, max float64) *FuncSource {
	s.min, s.max, s.hasBounds = min, max, true
	return s
}

func (s *FuncSource) Update() error {
	value, ok := s.read()
	s.mutex.Lock()
	s.value, s.available = value, ok
	s.mutex.Unlock()
	if !ok {
		return fmt.Errorf("source %s unavailable", s.ref)
	}
	return nil
}

func (s *FuncSource) Ref() string { return s.ref }

func (s *FuncSource) Exists() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.available
}

func (s *FuncSource) Value() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.value
}

func (s *FuncSource) DisplayText() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	text := formatReading(s.value, s.precision)
	if s.unit != "" {
		text += s.unit
	}
	return text
}

func (s *FuncSource) Name() string { return s.label }

func (s *FuncSource) Bounds() (float64, float64, bool) {
	return s.min, s.max, s.hasBounds
}

// FixedSource always reports the same value; used for demos and tests.
type FixedSource struct {
	SourceName string
	Val        float64
	Text       string
}

func (s *FixedSource) Exists() bool                     { return true }
func (s *FixedSource) Value() float64                   { return s.Val }
func (s *FixedSource) DisplayText() string              { return s.Text }
func (s *FixedSource) Name() string                     { return s.SourceName }
func (s *FixedSource) Bounds() (float64, float64, bool) { return 0, 0, false }

// SourceRegistry resolves the opaque source references stored in widget
// profiles. An unknown reference resolves to nil, which the model renders
// as a missing source.
type SourceRegistry struct {
	sources map[string]*FuncSource
}

func NewSourceRegistry() *SourceRegistry {
	reg := &SourceRegistry{sources: make(map[string]*FuncSource)}

	reg.Register(NewFuncSource("cpu_usage", "CPU", "%", 0, readCPUUsage).WithBounds(0, 100))
	reg.Register(NewFuncSource("mem_usage", "Memory", "%", 0, readMemoryUsage).WithBounds(0, 100))
	reg.Register(NewFuncSource("load_avg", "Load", "", 2, readLoadAvg))
	reg.Register(NewFuncSource("cpu_temp", "CPU Temp", "°C", 0, readCPUTemp).WithBounds(0, 100))
	registerPlatformSources(reg)

	return reg
}

func (r *SourceRegistry) Register(s *FuncSource) {
	r.sources[s.Ref()] = s
}

// Resolve returns the source for a reference, or nil when nothing is
// bound under that name.
func (r *SourceRegistry) Resolve(ref string) Source {
	s, ok := r.sources[ref]
	if !ok {
		return nil
	}
	return s
}

func (r *SourceRegistry) Update(ref string) {
	if s, ok := r.sources[ref]; ok {
		if err := s.Update(); err != nil {
			logDebug("source update: %v", err)
		}
	}
}

func (r *SourceRegistry) Refs() []string {
	refs := make([]string, 0, len(r.sources))
	for ref := range r.sources {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

func readCPUUsage() (float64, bool) {
	percent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(percent) == 0 {
		return 0, false
	}
	return percent[0], true
}

func readMemoryUsage() (float64, bool) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, false
	}
	return vm.UsedPercent, true
}

func readLoadAvg() (float64, bool) {
	avg, err := load.Avg()
	if err != nil {
		return 0, false
	}
	return avg.Load1, true
}

func readCPUTemp() (float64, bool) {
	temps, err := host.SensorsTemperatures()
	if err != nil || len(temps) == 0 {
		return 0, false
	}

	// Prefer the package sensor, fall back to the first plausible one.
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		if strings.Contains(key, "coretemp") || strings.Contains(key, "k10temp") || strings.Contains(key, "cpu") {
			if t.Temperature > 0 {
				return t.Temperature, true
			}
		}
	}
	for _, t := range temps {
		if t.Temperature > 0 {
			return t.Temperature, true
		}
	}
	return 0, false
}
