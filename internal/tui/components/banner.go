package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/funil/internal/notify"
	"github.com/thenoetrevino/funil/internal/tui/theme"
)

type bannerStyle struct {
	icon       string
	foreground string
	background string
}

func styleFor(k notify.Kind) bannerStyle {
	switch k {
	case notify.KindSuccess:
		return bannerStyle{icon: "✓", foreground: theme.SuccessFg, background: theme.SuccessBg}
	case notify.KindError:
		return bannerStyle{icon: "✕", foreground: theme.ErrorFg, background: theme.ErrorBg}
	default:
		return bannerStyle{icon: "🔔", foreground: theme.InfoFg, background: theme.InfoBg}
	}
}

// RenderBanner renders one notification banner
func RenderBanner(n notify.Notification) string {
	s := styleFor(n.Kind)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.foreground)).
		Background(lipgloss.Color(s.background)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.background)).
		Padding(0, 1).
		Width(BannerWidth).
		Render(s.icon + " " + n.Message)
}

// RenderBanners stacks banners vertically, oldest on top
func RenderBanners(items []notify.Notification) string {
	if len(items) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(items))
	for _, n := range items {
		rendered = append(rendered, RenderBanner(n))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
