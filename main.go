package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

var (
	Version   = "unknown"
	BuildTime = "unknown"
)

const RepositoryURL = "https://github.com/flyingeek/3stated"

func main() {
	initLogger("")

	defaultConfigDir := "./config"
	if _, err := os.Stat(defaultConfigDir); err != nil {
		if _, err := os.Stat("/etc/3stated"); err == nil {
			defaultConfigDir = "/etc/3stated"
		}
	}

	configFlag := flag.String("config", "default", "Configuration file name (without .json extension)")
	configDirFlag := flag.String("config-dir", defaultConfigDir, "Configuration directory")
	listConfigsFlag := flag.Bool("list-configs", false, "List available configuration files")
	listSourcesFlag := flag.Bool("list-sources", false, "List all available reading sources and exit")
	onceFlag := flag.Bool("once", false, "Render a single frame and exit")

	flag.Parse()

	configManager := NewConfigManager(*configDirFlag)

	if *listConfigsFlag {
		configs, err := configManager.ListConfigs()
		if err != nil {
			logFatal("Config enumeration failed: %v", err)
		}
		fmt.Println("Available configurations:")
		for _, name := range configs {
			fmt.Printf("  %s\n", name)
		}
		return
	}

	registry := NewSourceRegistry()

	if *listSourcesFlag {
		listAllSources(registry)
		return
	}

	config, err := configManager.LoadConfig(*configFlag)
	if err != nil {
		logFatal("Config load failed '%s': %v", *configFlag, err)
	}

	if config.LogFile != "" {
		initLogger(config.LogFile)
	}

	logInfo("3stated widget v%s - %s", Version, RepositoryURL)

	// Widget profile: load through the schema (migrating old layouts),
	// then write back so the file is always in the current layout.
	profiles := NewProfileStore(configManager.ProfileDir())
	profileName := config.GetWidgetProfile()

	widgetCfg := DefaultWidgetConfig()
	if profiles.Exists(profileName) {
		record, err := profiles.Load(profileName)
		if err != nil {
			logFatal("Widget profile load failed '%s': %v", profileName, err)
		}
		widgetCfg = LoadWidgetConfig(record)
	}

	saved := NewRecord()
	SaveWidgetConfig(saved, widgetCfg)
	if err := profiles.Save(profileName, saved); err != nil {
		logWarn("Widget profile save failed: %v", err)
	}

	model := NewDisplayModel(widgetCfg, NewDefaultLocalizer())
	source := registry.Resolve(widgetCfg.SourceRef)
	if source == nil {
		logWarn("No source bound for reference %q", widgetCfg.SourceRef)
	}
	model.BindSource(source)

	fontCache, err := LoadFontCache(config.FontFamilies)
	if err != nil {
		logFatal("Font initialization failed: %v", err)
	}
	renderer := NewWidgetRenderer(fontCache)

	outputManager := NewOutputManager()
	outputMode := strings.ToLower(config.OutputType)
	if outputMode == "" {
		outputMode = "file"
	}
	if outputMode == "usb" || outputMode == "both" {
		outputManager.AddHandler(NewUSBOutputHandler())
	}
	if outputMode == "file" || outputMode == "both" {
		outputManager.AddHandler(NewFileOutputHandler(config.GetOutputFile()))
	}
	defer outputManager.Close()

	var server *StatusServer
	if config.ListenAddr != "" {
		server = NewStatusServer()
		server.Start(config.ListenAddr)
		defer server.Shutdown()
	}

	var trayUpdate chan string
	trayQuit := make(chan struct{})
	if config.EnableTray {
		trayUpdate, trayQuit = runTray(config.Name)
	}

	renderFrame := func() DisplaySnapshot {
		snap := model.Snapshot()
		img := renderer.Render(snap, model.Config(), config.GetWidth(), config.GetHeight())
		if err := outputManager.Output(img); err != nil {
			logWarn("Output failed: %v", err)
		}
		if server != nil {
			server.Publish(snap, img)
		}
		return snap
	}

	registry.Update(widgetCfg.SourceRef)
	model.ObserveReading()
	snap := renderFrame()

	if *onceFlag {
		return
	}

	refresh := time.Duration(config.GetRefreshInterval()) * time.Millisecond
	logInfo("Config: %s | Output: %s | Refresh: %v | Source: %s",
		*configFlag, outputMode, refresh, widgetCfg.SourceRef)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	lastState := snap.State
	lastMissing := snap.Missing

	for {
		select {
		case <-ticker.C:
			registry.Update(widgetCfg.SourceRef)
			if !model.ObserveReading() {
				continue
			}

			snap := renderFrame()

			if trayUpdate != nil && (snap.State != lastState || snap.Missing != lastMissing) {
				text := snap.State.String()
				if snap.Missing {
					text = "no source"
				}
				select {
				case trayUpdate <- text:
				default:
				}
			}
			lastState = snap.State
			lastMissing = snap.Missing

		case <-signalChan:
			logInfo("Shutdown initiated")
			return
		case <-trayQuit:
			logInfo("Quit from tray")
			return
		}
	}
}

func listAllSources(registry *SourceRegistry) {
	fmt.Println("Updating source values...")
	for _, ref := range registry.Refs() {
		registry.Update(ref)
	}

	fmt.Printf("%-16s %-12s %s\n", "Reference", "Name", "Current Value")
	fmt.Printf("%-16s %-12s %s\n", "---------", "----", "-------------")
	for _, ref := range registry.Refs() {
		source := registry.Resolve(ref)
		value := "-"
		if source.Exists() {
			value = source.DisplayText()
		}
		fmt.Printf("%-16s %-12s %s\n", ref, source.Name(), value)
	}
}
