package fetch

import (
	"fmt"
	"io"
)

// progressWriter rewrites one status line as bytes stream through it. With an
// unknown total it falls back to a raw byte counter.
type progressWriter struct {
	out     io.Writer
	total   int64
	written int64
	lastPct int
}

func newProgressWriter(out io.Writer, total int64) *progressWriter {
	return &progressWriter{out: out, total: total, lastPct: -1}
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))

	if p.total <= 0 {
		fmt.Fprintf(p.out, "\r⬇ %s", formatBytes(p.written))
		return len(b), nil
	}

	pct := int(p.written * 100 / p.total)
	if pct != p.lastPct {
		p.lastPct = pct
		fmt.Fprintf(p.out, "\r⬇ %3d%% (%s/%s)", pct,
			formatBytes(p.written), formatBytes(p.total))
	}
	return len(b), nil
}

func (p *progressWriter) finish() {
	if p.written > 0 {
		fmt.Fprintln(p.out)
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
