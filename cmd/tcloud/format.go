package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// displayStatus renders API status values such as "processing" as "Processing".
func displayStatus(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return "-"
	}
	return titleCaser.String(strings.ReplaceAll(status, "_", " "))
}

func displayBytes(size int64) string {
	if size <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(size))
}

func displayPercent(progress int) string {
	return strconv.Itoa(progress) + "%"
}

func displayDimensions(width, height int) string {
	if width <= 0 || height <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", width, height)
}

// displayDuration renders a duration given in milliseconds.
func displayDuration(millis int64) string {
	if millis <= 0 {
		return "-"
	}
	return (time.Duration(millis) * time.Millisecond).Round(time.Second).String()
}

// displayTimestamp shortens API timestamps to a relative form when they parse.
func displayTimestamp(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339Nano, "2006/01/02 15:04:05 -0700"} {
		if t, err := time.Parse(layout, value); err == nil {
			return humanize.Time(t)
		}
	}
	return value
}

func displayText(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
