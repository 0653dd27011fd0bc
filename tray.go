package main

import "github.com/getlantern/systray"

// runTray shows a tray entry mirroring the widget state. It owns its own
// callback loop; quit requests land on the returned channel.
func runTray(title string) (update chan string, quit chan struct{}) {
	update = make(chan string, 4)
	quit = make(chan struct{})

	go systray.Run(func() {
		systray.SetTitle(title)
		systray.SetTooltip(title)

		status := systray.AddMenuItem("starting...", "Current state")
		status.Disable()
		quitItem := systray.AddMenuItem("Quit", "Stop the widget")

		go func() {
			for {
				select {
				case text := <-update:
					status.SetTitle(text)
					systray.SetTooltip(title + ": " + text)
				case <-quitItem.ClickedCh:
					close(quit)
					systray.Quit()
					return
				}
			}
		}()
	}, func() {})

	return update, quit
}
