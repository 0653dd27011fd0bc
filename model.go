package main

import "strings"

// Source is the live reading the widget classifies. A widget with no
// source bound is a valid, renderable configuration.
type Source interface {
	Exists() bool
	Value() float64
	DisplayText() string
	Name() string
	Bounds() (min, max float64, ok bool)
}

// Localizer resolves display string keys. The locale can change while the
// widget runs, so translated strings are never cached across snapshots.
type Localizer interface {
	Translate(key string) string
}

// StaticLocalizer is a map-backed Localizer falling back to the key itself.
type StaticLocalizer struct {
	strings map[string]string
}

func NewStaticLocalizer(table map[string]string) *StaticLocalizer {
	return &StaticLocalizer{strings: table}
}

// NewDefaultLocalizer returns the builtin English table.
func NewDefaultLocalizer() *StaticLocalizer {
	return NewStaticLocalizer(map[string]string{
		"state_down":     "Low",
		"state_middle":   "Normal",
		"state_up":       "High",
		"source_missing": "no source",
	})
}

func (l *StaticLocalizer) Translate(key string) string {
	if s, ok := l.strings[key]; ok {
		return s
	}
	return key
}

// StateStyle is the per-state appearance. TitleKey names the localized
// fallback title used when the title template is empty; Background and
// TextColor are hex color strings.
type StateStyle struct {
	TitleKey   string
	Text       string
	Background string
	TextColor  string
}

// TitleStyle controls the title band.
type TitleStyle struct {
	Show           bool
	Text           string
	UseCustomColor bool
	Background     string
	TextColor      string
}

// WidgetConfig is the unit of persistence: everything one widget instance
// needs to classify and render, including the opaque reference to its
// source (which may be unbound).
type WidgetConfig struct {
	SourceRef     string
	Title         TitleStyle
	ThresholdDown float64
	ThresholdUp   float64
	FontSizeIndex int // ordinal 1..6
	Debug         bool
	States        [3]StateStyle // indexed by WidgetState
}

func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		Title: TitleStyle{
			Show:           true,
			Text:           "_n",
			UseCustomColor: false,
			Background:     "#303030",
			TextColor:      "#ffffff",
		},
		ThresholdDown: 30,
		ThresholdUp:   70,
		FontSizeIndex: 3,
		States: [3]StateStyle{
			StateDown:   {TitleKey: StateDown.Key(), Text: "_v", Background: "#00601a", TextColor: "#ffffff"},
			StateMiddle: {TitleKey: StateMiddle.Key(), Text: "_v", Background: "#806000", TextColor: "#ffffff"},
			StateUp:     {TitleKey: StateUp.Key(), Text: "_v", Background: "#800000", TextColor: "#ffffff"},
		},
	}
}

// DisplaySnapshot is everything the render glue needs for one frame,
// fully derived; nothing in it is retained between frames.
type DisplaySnapshot struct {
	Missing bool
	State   WidgetState
	Reading float64

	ShowTitle bool
	Title     string
	TitleBg   string
	TitleFg   string

	Lines []string
	Bg    string
	Fg    string

	Footer string
}

const missingTextColor = "#c00000"

// DisplayModel owns one widget's configuration and derives its current
// appearance on demand. It holds a non-owning source binding and tracks
// the last observed reading so the driver can skip unchanged frames.
type DisplayModel struct {
	cfg WidgetConfig
	loc Localizer

	source    Source
	lastValue float64
	hasLast   bool
	observed  bool
}

func NewDisplayModel(cfg WidgetConfig, loc Localizer) *DisplayModel {
	if loc == nil {
		loc = NewDefaultLocalizer()
	}
	return &DisplayModel{cfg: cfg, loc: loc}
}

// Config exposes the mutable configuration; the config form edits
// through this.
func (m *DisplayModel) Config() *WidgetConfig { return &m.cfg }

func (m *DisplayModel) SetLocalizer(loc Localizer) { m.loc = loc }

// BindSource attaches (or with nil, detaches) the reading source.
func (m *DisplayModel) BindSource(s Source) {
	m.source = s
	m.hasLast = false
	m.observed = false
}

func (m *DisplayModel) sourceBound() bool {
	return m.source != nil && m.source.Exists()
}

// ObserveReading samples the source and reports whether the observation
// differs from the previous one. Purely a refresh hint: rendering stays
// correct however often it runs.
func (m *DisplayModel) ObserveReading() (changed bool) {
	if !m.sourceBound() {
		changed = m.hasLast || !m.observed
		m.hasLast = false
		m.observed = true
		return changed
	}

	v := m.source.Value()
	changed = !m.hasLast || v != m.lastValue
	m.lastValue = v
	m.hasLast = true
	m.observed = true
	return changed
}

// LastReading returns the most recent observed value, if any.
func (m *DisplayModel) LastReading() (float64, bool) {
	return m.lastValue, m.hasLast
}

// Snapshot derives the current frame. Localized and templated strings are
// recomputed every call so locale switches and value changes show up on
// the next render.
func (m *DisplayModel) Snapshot() DisplaySnapshot {
	if !m.sourceBound() {
		return m.missingSnapshot()
	}

	value := m.source.Value()
	state := ClassifyReading(value, m.cfg.ThresholdDown, m.cfg.ThresholdUp)
	mustValidState(state)
	style := m.cfg.States[state]

	ctx := ExpandContext{
		Value: value,
		Text:  m.source.DisplayText(),
		Name:  m.source.Name(),
	}

	snap := DisplaySnapshot{
		State:   state,
		Reading: value,
		Lines:   strings.Split(ExpandTemplate(style.Text, ctx), "\n"),
		Bg:      style.Background,
		Fg:      style.TextColor,
	}
	m.fillTitle(&snap, ctx, style)

	if m.cfg.Debug {
		snap.Footer = ExpandTemplate("_2v ["+formatReading(m.cfg.ThresholdDown, 0)+".."+formatReading(m.cfg.ThresholdUp, 0)+"] "+state.String(), ctx)
	}
	return snap
}

func (m *DisplayModel) missingSnapshot() DisplaySnapshot {
	snap := DisplaySnapshot{
		Missing: true,
		State:   StateMiddle,
		Lines:   []string{m.loc.Translate("source_missing")},
		Fg:      missingTextColor,
	}
	if m.cfg.Title.Show {
		snap.ShowTitle = true
		snap.Title = ExpandTemplate(m.cfg.Title.Text, ExpandContext{})
		snap.TitleBg = m.cfg.Title.Background
		snap.TitleFg = m.cfg.Title.TextColor
	}
	return snap
}

func (m *DisplayModel) fillTitle(snap *DisplaySnapshot, ctx ExpandContext, style StateStyle) {
	if !m.cfg.Title.Show {
		return
	}
	snap.ShowTitle = true

	if m.cfg.Title.Text != "" {
		snap.Title = ExpandTemplate(m.cfg.Title.Text, ctx)
	} else {
		snap.Title = m.loc.Translate(style.TitleKey)
	}

	if m.cfg.Title.UseCustomColor {
		snap.TitleBg = m.cfg.Title.Background
		snap.TitleFg = m.cfg.Title.TextColor
	} else {
		snap.TitleBg = style.Background
		snap.TitleFg = style.TextColor
	}
}
