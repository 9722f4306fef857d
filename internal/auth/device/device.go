// Package device turns a User-Agent header into a short label for activity
// metadata, e.g. "Chrome on macOS".
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknownDevice = "Unknown Device"

// ParseUserAgent returns "<browser> on <os>", filling unknown parts with
// "Unknown". An empty header yields "Unknown Device".
func ParseUserAgent(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return unknownDevice
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	os := osName(ua)
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

// osName prefers the platform for handhelds so an iPhone reads "iPhone"
// rather than the long CPU string.
func osName(ua *useragent.UserAgent) string {
	platform := ua.Platform()
	if ua.Mobile() && platform != "" {
		return platform
	}
	info := ua.OSInfo()
	if info.Name == "" {
		return ua.OS()
	}
	if info.Name == "Mac OS X" {
		return "macOS"
	}
	return info.Name
}

// IsMobile reports whether the User-Agent is a handheld device.
func IsMobile(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	return useragent.New(userAgent).Mobile()
}
