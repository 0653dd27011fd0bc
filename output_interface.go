package main

import "image"

// OutputHandler pushes a rendered frame somewhere: a PNG on disk, a USB
// display, or anything else wired in.
type OutputHandler interface {
	Output(img image.Image) error
	Close() error
	Type() string
}

// OutputManager fans a frame out to every handler; the frame counts as
// delivered when at least one handler took it.
type OutputManager struct {
	handlers []OutputHandler
}

func NewOutputManager() *OutputManager {
	return &OutputManager{}
}

func (om *OutputManager) AddHandler(handler OutputHandler) {
	om.handlers = append(om.handlers, handler)
}

func (om *OutputManager) Output(img image.Image) error {
	var lastErr error
	delivered := false

	for _, handler := range om.handlers {
		if err := handler.Output(img); err != nil {
			logWarnModule("output", "%s failed: %v", handler.Type(), err)
			lastErr = err
		} else {
			delivered = true
		}
	}

	if !delivered && lastErr != nil {
		return lastErr
	}
	return nil
}

func (om *OutputManager) Close() {
	for _, handler := range om.handlers {
		if err := handler.Close(); err != nil {
			logWarnModule("output", "%s close failed: %v", handler.Type(), err)
		}
	}
}
