package main

import "strconv"

// Schema versions are encoded major*10000 + minor*100 + patch. The encoded
// value is written as the record's first field; the oldest layout wrote no
// version at all and stored the source reference first instead.
const (
	schemaVersion1 = 1 * 10000 // 1.0.0, the unmarked layout
	schemaVersion2 = 2 * 10000 // 2.0.0, dropped the show-source flag

	currentSchemaVersion = schemaVersion2
)

// Persisted field keys. Order on save is fixed and version-independent.
const (
	keyVersion       = "version"
	keySource        = "source"
	keySourceShow    = "sourceShow" // pre-2.0.0 only, folded into the title text on load
	keyTitleShow     = "titleShow"
	keyTitleText     = "titleText"
	keyTitleBgColor  = "titleBgColor"
	keyTitleTxColor  = "titleTxColor"
	keyTitleColorUse = "titleColorUse"
	keyThresholdDown = "thresholdDown"
	keyThresholdUp   = "thresholdUp"
	keyFontSizeIndex = "fontSizeIndex"
	keyDebugMode     = "debugMode"
)

// sourceNamePrefix reproduces the retired show-source toggle: 1.x profiles
// that had it set get the name placeholder glued onto their title text.
const sourceNamePrefix = "_n: "

var stateKeyNames = [3]string{StateDown: "down", StateMiddle: "middle", StateUp: "up"}

func stateKey(s WidgetState, suffix string) string {
	mustValidState(s)
	return stateKeyNames[s] + suffix
}

// SaveWidgetConfig writes cfg in the current layout: the schema version
// first, then every field in fixed order. Old layouts are never written.
func SaveWidgetConfig(store KeyValueStore, cfg WidgetConfig) {
	store.PutInt(keyVersion, currentSchemaVersion)
	store.PutString(keySource, cfg.SourceRef)
	store.PutBool(keyTitleShow, cfg.Title.Show)
	store.PutString(keyTitleText, cfg.Title.Text)
	store.PutString(keyTitleBgColor, cfg.Title.Background)
	store.PutString(keyTitleTxColor, cfg.Title.TextColor)
	store.PutBool(keyTitleColorUse, cfg.Title.UseCustomColor)
	store.PutFloat(keyThresholdDown, cfg.ThresholdDown)
	store.PutFloat(keyThresholdUp, cfg.ThresholdUp)
	store.PutInt(keyFontSizeIndex, cfg.FontSizeIndex)
	for s := StateDown; s <= StateUp; s++ {
		store.PutString(stateKey(s, "Text"), cfg.States[s].Text)
		store.PutString(stateKey(s, "BgColor"), cfg.States[s].Background)
		store.PutString(stateKey(s, "TxColor"), cfg.States[s].TextColor)
	}
	store.PutBool(keyDebugMode, cfg.Debug)
}

// LoadWidgetConfig reads a persisted record of any historical layout into
// the current WidgetConfig. Missing fields keep their defaults; only the
// source reference and the title prefix depend on the stored version.
func LoadWidgetConfig(store KeyValueStore) WidgetConfig {
	cfg := DefaultWidgetConfig()
	if store.Len() == 0 {
		return cfg
	}

	_, first, _ := store.First()
	version, numeric := parseSchemaVersion(first)

	switch {
	case !numeric:
		// Unmarked 1.0.0 layout: the first field is the source reference.
		cfg.SourceRef = first
	case version == schemaVersion1:
		// A leading value equal to the 1.0.0 sentinel can only be a source
		// reference, since 1.0.0 never wrote a version marker.
		cfg.SourceRef = first
	default:
		if ref, ok := store.GetString(keySource); ok {
			cfg.SourceRef = ref
		}
	}

	loadCommonFields(store, &cfg)

	if numeric && version > schemaVersion1 && version < schemaVersion2 {
		if show, ok := store.GetBool(keySourceShow); ok && show {
			cfg.Title.Text = sourceNamePrefix + cfg.Title.Text
		}
	}

	return cfg
}

func loadCommonFields(store KeyValueStore, cfg *WidgetConfig) {
	if v, ok := store.GetBool(keyTitleShow); ok {
		cfg.Title.Show = v
	}
	if v, ok := store.GetString(keyTitleText); ok {
		cfg.Title.Text = v
	}
	if v, ok := store.GetString(keyTitleBgColor); ok {
		cfg.Title.Background = v
	}
	if v, ok := store.GetString(keyTitleTxColor); ok {
		cfg.Title.TextColor = v
	}
	if v, ok := store.GetBool(keyTitleColorUse); ok {
		cfg.Title.UseCustomColor = v
	}
	if v, ok := store.GetFloat(keyThresholdDown); ok {
		cfg.ThresholdDown = v
	}
	if v, ok := store.GetFloat(keyThresholdUp); ok {
		cfg.ThresholdUp = v
	}
	if v, ok := store.GetInt(keyFontSizeIndex); ok {
		cfg.FontSizeIndex = v
	}
	for s := StateDown; s <= StateUp; s++ {
		if v, ok := store.GetString(stateKey(s, "Text")); ok {
			cfg.States[s].Text = v
		}
		if v, ok := store.GetString(stateKey(s, "BgColor")); ok {
			cfg.States[s].Background = v
		}
		if v, ok := store.GetString(stateKey(s, "TxColor")); ok {
			cfg.States[s].TextColor = v
		}
	}
	if v, ok := store.GetBool(keyDebugMode); ok {
		cfg.Debug = v
	}
}

func parseSchemaVersion(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
