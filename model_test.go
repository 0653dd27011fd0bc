package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batteryModel(value float64) *DisplayModel {
	cfg := DefaultWidgetConfig()
	cfg.ThresholdDown = -50
	cfg.ThresholdUp = 50
	cfg.Title.Text = "_n: _v"
	model := NewDisplayModel(cfg, NewDefaultLocalizer())
	model.BindSource(&FixedSource{SourceName: "Battery", Val: value, Text: "60%"})
	return model
}

func TestSnapshot_Scenario(t *testing.T) {
	model := batteryModel(60)

	snap := model.Snapshot()
	assert.Equal(t, StateUp, snap.State)
	assert.False(t, snap.Missing)
	assert.True(t, snap.ShowTitle)
	assert.Equal(t, "Battery: 60", snap.Title)
	assert.Equal(t, []string{"60"}, snap.Lines)
	assert.Equal(t, model.Config().States[StateUp].Background, snap.Bg)
}

func TestSnapshot_TitleColors(t *testing.T) {
	model := batteryModel(60)

	// Title follows the state style until a custom color is requested.
	snap := model.Snapshot()
	assert.Equal(t, model.Config().States[StateUp].Background, snap.TitleBg)

	model.Config().Title.UseCustomColor = true
	snap = model.Snapshot()
	assert.Equal(t, model.Config().Title.Background, snap.TitleBg)
	assert.Equal(t, model.Config().Title.TextColor, snap.TitleFg)
}

func TestSnapshot_EmptyTitleFallsBackToStateTitle(t *testing.T) {
	model := batteryModel(60)
	model.Config().Title.Text = ""

	snap := model.Snapshot()
	assert.Equal(t, "High", snap.Title)
}

func TestSnapshot_MultiLineBody(t *testing.T) {
	model := batteryModel(0)
	model.Config().States[StateMiddle].Text = "_n\n_v"

	snap := model.Snapshot()
	assert.Equal(t, StateMiddle, snap.State)
	assert.Equal(t, []string{"Battery", "0"}, snap.Lines)
}

func TestSnapshot_MissingSource(t *testing.T) {
	cfg := DefaultWidgetConfig()
	model := NewDisplayModel(cfg, NewDefaultLocalizer())

	snap := model.Snapshot()
	assert.True(t, snap.Missing)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "no source", snap.Lines[0])
}

func TestSnapshot_LocaleSwitchBetweenRenders(t *testing.T) {
	model := NewDisplayModel(DefaultWidgetConfig(), NewDefaultLocalizer())

	assert.Equal(t, "no source", model.Snapshot().Lines[0])

	model.SetLocalizer(NewStaticLocalizer(map[string]string{"source_missing": "kein Sensor"}))
	assert.Equal(t, "kein Sensor", model.Snapshot().Lines[0])
}

func TestSnapshot_DebugFooter(t *testing.T) {
	model := batteryModel(60)

	assert.Empty(t, model.Snapshot().Footer)

	model.Config().Debug = true
	footer := model.Snapshot().Footer
	assert.Contains(t, footer, "60.00")
	assert.Contains(t, footer, "up")
}

func TestObserveReading_ChangeDetection(t *testing.T) {
	src := &FixedSource{SourceName: "Battery", Val: 10}
	model := NewDisplayModel(DefaultWidgetConfig(), nil)
	model.BindSource(src)

	assert.True(t, model.ObserveReading(), "first observation always counts as a change")
	assert.False(t, model.ObserveReading())

	src.Val = 11
	assert.True(t, model.ObserveReading())
	assert.False(t, model.ObserveReading())

	v, ok := model.LastReading()
	require.True(t, ok)
	assert.Equal(t, 11.0, v)
}

func TestObserveReading_SourceLoss(t *testing.T) {
	model := NewDisplayModel(DefaultWidgetConfig(), nil)
	model.BindSource(&FixedSource{Val: 10})
	model.ObserveReading()

	model.BindSource(nil)
	assert.True(t, model.ObserveReading(), "losing the source is a change")
	assert.False(t, model.ObserveReading())

	_, ok := model.LastReading()
	assert.False(t, ok)
}
