package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/espalier/pkg/entity"
)

// Summary renders an entity as markdown.
func Summary(cfg *entity.InfraConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Instance %s\n\n", cfg.InstanceID())
	fmt.Fprintf(&b, "- **Role**: %s\n", cfg.Role())
	fmt.Fprintf(&b, "- **Game type**: %s\n", cfg.GameType())
	fmt.Fprintf(&b, "- **Status**: %s\n", cfg.Status())
	fmt.Fprintf(&b, "- **Stage flow**: %s\n", cfg.StageFlow())
	fmt.Fprintf(&b, "- **Tier**: %s\n", orDash(cfg.Tier()))
	fmt.Fprintf(&b, "- **Containers**: pid=%d mpc=%d (files/container=%d, concurrency=%d)\n",
		cfg.NumPIDContainers(), cfg.NumMPCContainers(), cfg.NumFilesPerMPCContainer(), cfg.Concurrency())
	fmt.Fprintf(&b, "- **Created**: %s\n", formatTS(cfg.CreationTS()))
	if cfg.EndTS() != 0 {
		fmt.Fprintf(&b, "- **Ended**: %s\n", formatTS(cfg.EndTS()))
	}
	if features := cfg.Features(); len(features) > 0 {
		fmt.Fprintf(&b, "- **Features**: ")
		for i, f := range features {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(string(f))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HistoryTable renders the status history as a markdown table, oldest
// first.
func HistoryTable(cfg *entity.InfraConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Status history: %s\n\n", cfg.InstanceID())
	b.WriteString("| # | Status | Timestamp |\n")
	b.WriteString("|---|--------|-----------|\n")
	for i, update := range cfg.StatusUpdates() {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, update.Status, formatTS(update.Timestamp))
	}
	return b.String()
}

// Render converts markdown to terminal output. Non-TTY or monochrome
// environments get the raw markdown.
func Render(markdown string) string {
	if termenv.NewOutput(os.Stdout).EnvColorProfile() == termenv.Ascii {
		return markdown
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

func formatTS(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
