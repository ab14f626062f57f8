package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"tcloud/internal/logging"
	"tcloud/internal/services/telestream"
)

// uploadProgress renders upload progress on w: an interactive bar on a
// terminal, otherwise one line per 10% step.
type uploadProgress struct {
	total    int64
	bar      *progressbar.ProgressBar
	sampler  *logging.ProgressSampler
	out      io.Writer
	label    string
	fraction float64
}

func newUploadProgress(w io.Writer, label string, total int64) *uploadProgress {
	p := &uploadProgress{total: total, out: w, label: label}
	if isTerminal(w) {
		p.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Uploading "+label),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		p.sampler = logging.NewProgressSampler(0.1)
	}
	return p
}

// callback returns the function handed to UploadFile.
func (p *uploadProgress) callback() telestream.ProgressFunc {
	return func(fraction float64) {
		p.fraction = fraction
		sent := p.bytesSent()
		if p.bar != nil {
			_ = p.bar.Set64(sent)
			return
		}
		if p.sampler.ShouldLog(fraction) {
			fmt.Fprintf(p.out, "Uploading %s: %3.0f%% (%s of %s)\n",
				p.label, fraction*100, displayBytes(sent), displayBytes(p.total))
		}
	}
}

func (p *uploadProgress) bytesSent() int64 {
	return int64(p.fraction * float64(p.total))
}

func (p *uploadProgress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
