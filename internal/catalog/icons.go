package catalog

// Icon identifies an entry in the storefront's closed icon set. Taxonomy
// nodes store the token; the rendering layer resolves it to an asset at
// the boundary, never by dynamic string lookup into an icon library.
type Icon string

const (
	IconGamepad    Icon = "gamepad"
	IconSim        Icon = "sim"
	IconTv         Icon = "tv"
	IconMusic      Icon = "music"
	IconGift       Icon = "gift"
	IconPhone      Icon = "phone"
	IconGlobe      Icon = "globe"
	IconSparkles   Icon = "sparkles"
	IconCreditCard Icon = "credit_card"
	IconApps       Icon = "apps"
	IconCloud      Icon = "cloud"
	IconShield     Icon = "shield"
	IconBook       Icon = "book"
	IconTag        Icon = "tag"
)

var iconSet = map[Icon]struct{}{
	IconGamepad: {}, IconSim: {}, IconTv: {}, IconMusic: {}, IconGift: {},
	IconPhone: {}, IconGlobe: {}, IconSparkles: {}, IconCreditCard: {},
	IconApps: {}, IconCloud: {}, IconShield: {}, IconBook: {}, IconTag: {},
}

// ValidIcon reports whether s is a member of the closed icon set.
func ValidIcon(s string) bool {
	_, ok := iconSet[Icon(s)]
	return ok
}

// Icons returns the full icon token set for admin pickers.
func Icons() []Icon {
	out := make([]Icon, 0, len(iconSet))
	for _, ic := range []Icon{
		IconGamepad, IconSim, IconTv, IconMusic, IconGift, IconPhone,
		IconGlobe, IconSparkles, IconCreditCard, IconApps, IconCloud,
		IconShield, IconBook, IconTag,
	} {
		out = append(out, ic)
	}
	return out
}
