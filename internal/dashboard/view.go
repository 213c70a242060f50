package dashboard

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/streamdash/internal/channel"
	"github.com/rileyhilliard/streamdash/internal/probe"
	"github.com/rileyhilliard/streamdash/internal/registry"
	"github.com/rileyhilliard/streamdash/internal/sampler"
	"github.com/rileyhilliard/streamdash/internal/ui"
)

// Title is shown in the header box.
const Title = "STREAMING SERVER PERFORMANCE DASHBOARD"

// TimeFormat is the header timestamp layout.
const TimeFormat = "2006-01-02 15:04:05"

// FooterHint tells the operator how to leave.
const FooterHint = "Press Ctrl+C to exit"

// ClosingMessage is printed once the dashboard stops.
const ClosingMessage = "Dashboard closed"

// Labels for channel health.
const (
	LabelHealthy = "HEALTHY"
	LabelStale   = "STALE"
)

const (
	boxInnerWidth = 63
	boxPadding    = "     "
	ruleWidth     = 70
	indent        = "  "
	notAvailable  = "N/A"
)

var workerTable = ui.Table{
	Indent:    indent,
	RuleWidth: ruleWidth,
	Columns: []ui.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 15, Truncate: true},
		{Title: "Status", Width: 12},
		{Title: "CPU", Width: 8},
		{Title: "Mem", Width: 10},
		{Title: "Restarts", Width: 10},
	},
}

var healthTable = ui.Table{
	Indent:    indent,
	RuleWidth: ruleWidth,
	Columns: []ui.Column{
		{Title: "Channel", Width: 10},
		{Title: "Segments", Width: 10},
		{Title: "Size", Width: 12},
		{Title: "Updated", Width: 15},
		{Title: "Status", Width: 10},
	},
}

// Render draws a snapshot. It has no side effects and the same inputs
// always give the same frame.
func Render(s Snapshot, t ui.Theme) Frame {
	var b strings.Builder

	renderHeader(&b, s, t)
	b.WriteString("\n")
	renderResources(&b, s.Host, t)
	b.WriteString("\n")
	renderCores(&b, s.Host, t)
	b.WriteString("\n")
	renderWorkers(&b, s.Workers, t)
	b.WriteString("\n")
	renderHealth(&b, s.Channels, t)
	b.WriteString("\n")
	b.WriteString(t.Warning(FooterHint))
	b.WriteString("\n")

	return Frame(b.String())
}

func renderHeader(b *strings.Builder, s Snapshot, t ui.Theme) {
	line := func(s string) {
		b.WriteString(t.Accent(s))
		b.WriteString("\n")
	}
	edge := strings.Repeat(ui.BoxHorizontal, boxInnerWidth)
	boxed := func(text string) string {
		return ui.BoxVertical + ui.PadRight(boxPadding+text, boxInnerWidth) + ui.BoxVertical
	}

	line(ui.BoxTopLeft + edge + ui.BoxTopRight)
	line(boxed(Title))
	line(boxed(s.Time.Format(TimeFormat)))
	line(ui.BoxBottomLeft + edge + ui.BoxBottomRight)
}

func renderResources(b *strings.Builder, h sampler.HostSnapshot, t ui.Theme) {
	b.WriteString(t.Heading("SYSTEM RESOURCES"))
	b.WriteString("\n")

	field := func(label, value string) {
		fmt.Fprintf(b, "%s%-14s%s\n", indent, label+":", value)
	}

	if h.CPU.Available() {
		field("CPU Usage", ui.FormatPercent(h.CPUOverall(), t))
	} else {
		field("CPU Usage", unavailable(h.CPU.Reason(), t))
	}

	if h.Memory.Available() {
		field("Memory", usage(h.MemUsed(), h.MemTotal(), h.MemPercent(), t))
	} else {
		field("Memory", unavailable(h.Memory.Reason(), t))
	}

	if h.Disk.Available() {
		field("Disk", usage(h.DiskUsed(), h.DiskTotal(), h.DiskPercent(), t))
	} else {
		field("Disk", unavailable(h.Disk.Reason(), t))
	}

	if h.Network.Available() {
		field("Network RX", ui.FormatBytes(h.NetRxTotal()))
		field("Network TX", ui.FormatBytes(h.NetTxTotal()))
	} else {
		reason := unavailable(h.Network.Reason(), t)
		field("Network RX", reason)
		field("Network TX", reason)
	}
}

func usage(used, total uint64, percent float64, t ui.Theme) string {
	return fmt.Sprintf("%s / %s (%s)", ui.FormatBytes(used), ui.FormatBytes(total), ui.FormatPercent(percent, t))
}

func unavailable(reason string, t ui.Theme) string {
	if reason == "" {
		return notAvailable
	}
	return notAvailable + " " + t.Muted("("+reason+")")
}

func renderCores(b *strings.Builder, h sampler.HostSnapshot, t ui.Theme) {
	b.WriteString(t.Heading("CPU CORES"))
	b.WriteString("\n")

	if !h.CPU.Available() {
		b.WriteString(indent + unavailable(h.CPU.Reason(), t) + "\n")
		return
	}
	for i, p := range h.CPUPerCore() {
		fmt.Fprintf(b, "%sCore %d: %s\n", indent, i, ui.FormatPercent(p, t))
	}
}

func renderWorkers(b *strings.Builder, workers probe.Result[[]registry.WorkerInfo], t ui.Theme) {
	b.WriteString(t.Heading(fmt.Sprintf("ACTIVE STREAMS (%d)", len(workers.Value))))
	b.WriteString("\n")
	b.WriteString(workerTable.Header(t))
	b.WriteString("\n")

	if !workers.Available() {
		b.WriteString(indent + t.Muted("registry unavailable: "+workers.Reason()) + "\n")
		return
	}

	for _, w := range workers.Value {
		status := t.Critical(w.Status)
		if w.Online() {
			status = t.Nominal(w.Status)
		}
		b.WriteString(workerTable.Row(
			w.ChannelID(),
			w.Name,
			status,
			fmt.Sprintf("%.1f", w.CPU),
			ui.FormatBytes(w.Memory),
			ui.FormatCount(w.Restarts),
		))
		b.WriteString("\n")
	}
}

func renderHealth(b *strings.Builder, channels []channel.Stats, t ui.Theme) {
	b.WriteString(t.Heading("STREAM HEALTH"))
	b.WriteString("\n")
	b.WriteString(healthTable.Header(t))
	b.WriteString("\n")

	for _, c := range channels {
		health := t.Critical(LabelStale)
		if c.Healthy {
			health = t.Nominal(LabelHealthy)
		}
		b.WriteString(healthTable.Row(
			c.ChannelID,
			ui.FormatCount(uint64(c.SegmentCount)),
			ui.FormatBytes(c.TotalSegmentSize),
			c.Updated(),
			health,
		))
		b.WriteString("\n")
	}
}
