package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaRoundTrip_Default(t *testing.T) {
	cfg := DefaultWidgetConfig()

	store := NewRecord()
	SaveWidgetConfig(store, cfg)

	assert.Equal(t, cfg, LoadWidgetConfig(store))
}

func TestSchemaRoundTrip_Custom(t *testing.T) {
	cfg := DefaultWidgetConfig()
	cfg.SourceRef = "cpu_temp"
	cfg.Title = TitleStyle{Show: false, Text: "_n (_t)", UseCustomColor: true, Background: "#101010", TextColor: "#aabbcc"}
	cfg.ThresholdDown = -50
	cfg.ThresholdUp = 50.5
	cfg.FontSizeIndex = 6
	cfg.Debug = true
	cfg.States[StateUp].Text = "_2v hot"
	cfg.States[StateDown].Background = "#001122"

	store := NewRecord()
	SaveWidgetConfig(store, cfg)

	assert.Equal(t, cfg, LoadWidgetConfig(store))
}

func TestSchemaSave_VersionFirst(t *testing.T) {
	store := NewRecord()
	SaveWidgetConfig(store, DefaultWidgetConfig())

	key, value, ok := store.First()
	require.True(t, ok)
	assert.Equal(t, keyVersion, key)
	assert.Equal(t, "20000", value)
}

func TestSchemaLoad_UnversionedLayout(t *testing.T) {
	// The oldest layout stored the source reference first, unmarked.
	store := NewRecord()
	store.PutString(keySource, "Sw1")

	cfg := LoadWidgetConfig(store)
	assert.Equal(t, "Sw1", cfg.SourceRef)
	// Everything absent keeps its default.
	assert.Equal(t, DefaultWidgetConfig().ThresholdUp, cfg.ThresholdUp)
}

func TestSchemaLoad_VersionSentinel(t *testing.T) {
	// 1.0.0 never wrote a version marker, so a first value equal to the
	// sentinel is itself a source reference and is not read twice.
	store := NewRecord()
	store.PutInt(keyVersion, 10000)
	store.PutString(keySource, "ignored")

	cfg := LoadWidgetConfig(store)
	assert.Equal(t, "10000", cfg.SourceRef)
}

func TestSchemaLoad_LegacyShowSourceFlag(t *testing.T) {
	store := NewRecord()
	store.PutInt(keyVersion, 10500) // 1.5.0
	store.PutString(keySource, "Sw2")
	store.PutBool(keySourceShow, true)
	store.PutString(keyTitleText, "Batt")

	cfg := LoadWidgetConfig(store)
	assert.Equal(t, "Sw2", cfg.SourceRef)
	assert.Equal(t, "_n: Batt", cfg.Title.Text)
}

func TestSchemaLoad_LegacyShowSourceFlagOff(t *testing.T) {
	store := NewRecord()
	store.PutInt(keyVersion, 10500)
	store.PutString(keySource, "Sw2")
	store.PutBool(keySourceShow, false)
	store.PutString(keyTitleText, "Batt")

	cfg := LoadWidgetConfig(store)
	assert.Equal(t, "Batt", cfg.Title.Text)
}

func TestSchemaLoad_CurrentIgnoresLegacyFlag(t *testing.T) {
	store := NewRecord()
	store.PutInt(keyVersion, 20000)
	store.PutString(keySource, "Sw3")
	store.PutBool(keySourceShow, true) // stale key, no longer part of the layout
	store.PutString(keyTitleText, "Batt")

	cfg := LoadWidgetConfig(store)
	assert.Equal(t, "Sw3", cfg.SourceRef)
	assert.Equal(t, "Batt", cfg.Title.Text)
}

func TestSchemaLoad_NonNumericVersion(t *testing.T) {
	store := NewRecord()
	store.PutString(keyVersion, "2.0.0")

	cfg := LoadWidgetConfig(store)
	assert.Equal(t, "2.0.0", cfg.SourceRef)
}

func TestSchemaLoad_Empty(t *testing.T) {
	assert.Equal(t, DefaultWidgetConfig(), LoadWidgetConfig(NewRecord()))
}
