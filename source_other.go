//go:build !linux

package main

func registerPlatformSources(reg *SourceRegistry) {}
