package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/ui/theme"
)

const bannerArt = `╔╦╗╔═╗╔═╗╦╔═  ╦╔╗╔╔╦╗╔═╗╦═╗╦  ╦╦╔═╗╦ ╦
║║║║ ║║  ╠╩╗  ║║║║ ║ ║╣ ╠╦╝╚╗╔╝║║╣ ║║║
╩ ╩╚═╝╚═╝╩ ╩  ╩╝╚╝ ╩ ╚═╝╩╚═ ╚╝ ╩╚═╝╚╩╝`

// BannerMinWidth is the narrowest width that fits the block-letter art.
const BannerMinWidth = 42

var bannerStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

// Banner is the product name in block letters, or spaced capitals when
// width is under BannerMinWidth.
func Banner(width int) string {
	if width < BannerMinWidth {
		return bannerStyle.Render("M O C K   I N T E R V I E W")
	}
	return bannerStyle.Render(bannerArt)
}
