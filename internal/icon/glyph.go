package icon

import (
	"sort"
	"strings"
)

// Glyph names a built-in icon the frontend can render. The set is closed:
// only values returned by Lookup, Glyphs or the constants below are valid.
type Glyph string

const (
	GlyphBuilding2       Glyph = "Building2"
	GlyphBuilding        Glyph = "Building"
	GlyphHome            Glyph = "Home"
	GlyphContainer       Glyph = "Container"
	GlyphRuler           Glyph = "Ruler"
	GlyphZap             Glyph = "Zap"
	GlyphDroplets        Glyph = "Droplets"
	GlyphHardHat         Glyph = "HardHat"
	GlyphPencilRuler     Glyph = "PencilRuler"
	GlyphWrench          Glyph = "Wrench"
	GlyphSquareGantt     Glyph = "SquareGantt"
	GlyphHammer          Glyph = "Hammer"
	GlyphLayoutDashboard Glyph = "LayoutDashboard"
)

// Default is rendered for empty or unknown tokens.
const Default = GlyphWrench

// tokens is the short keyword table stored in service rows.
var tokens = map[string]Glyph{
	"building2":          GlyphBuilding2,
	"building":           GlyphBuilding,
	"house":              GlyphHome,
	"container":          GlyphContainer,
	"ruler":              GlyphRuler,
	"zap":                GlyphZap,
	"droplets":           GlyphDroplets,
	"hard-hat":           GlyphHardHat,
	"hardhat":            GlyphHardHat,
	"pencil-ruler":       GlyphPencilRuler,
	"wrench":             GlyphWrench,
	"square-chart-gantt": GlyphSquareGantt,
	"squarechartgantt":   GlyphSquareGantt,
	"hammer":             GlyphHammer,
	"layout-dashboard":   GlyphLayoutDashboard,
	"layoutdashboard":    GlyphLayoutDashboard,
}

// curated lists the named glyphs offered by the admin icon picker.
var curated = []Glyph{
	"Activity", "Airplay", "AlertCircle", "AlertTriangle", "AlignCenter", "AlignJustify", "AlignLeft", "AlignRight",
	"Anchor", "Aperture", "Archive", "ArrowDown", "ArrowLeft", "ArrowRight", "ArrowUp", "Award",
	"BarChart", "BarChart2", "Battery", "BatteryCharging", "Bell", "Bluetooth", "Bold", "Book", "Bookmark",
	"Box", "Briefcase", "Building", "Building2", "Calendar", "Camera", "Cast", "Check", "CheckCircle",
	"ChevronDown", "ChevronLeft", "ChevronRight", "ChevronUp", "Circle", "Clipboard", "Clock", "Cloud",
	"Code", "Coffee", "Cog", "Columns", "Command", "Compass", "Container", "Copy", "CreditCard", "Crop",
	"Database", "Delete", "Disc", "DollarSign", "Download", "Droplet", "Droplets", "Edit", "Edit2", "Edit3",
	"ExternalLink", "Eye", "EyeOff", "Facebook", "FastForward", "Feather", "File", "FileText", "Film", "Filter",
	"Flag", "Folder", "Frown", "Gift", "GitBranch", "GitCommit", "GitMerge", "GitPullRequest", "Github", "Globe",
	"Grid", "Hammer", "HardDrive", "HardHat", "Hash", "Headphones", "Heart", "HelpCircle", "Home", "House",
	"Image", "Inbox", "Info", "Instagram", "Italic", "Key", "Layers", "Layout", "LayoutDashboard", "LifeBuoy",
	"Link", "Link2", "Linkedin", "List", "Loader", "Lock", "LogIn", "LogOut", "Mail", "Map", "MapPin",
	"Maximize", "Maximize2", "Meh", "Menu", "MessageCircle", "MessageSquare", "Mic", "MicOff", "Minimize",
	"Minimize2", "Minus", "Monitor", "Moon", "MoreHorizontal", "MoreVertical", "Move", "Music", "Navigation",
	"Navigation2", "Octagon", "Package", "Paperclip", "Pause", "PauseCircle", "PenTool", "Pencil", "PencilRuler",
	"Percent", "Phone", "PhoneCall", "PhoneForwarded", "PhoneIncoming", "PhoneMissed", "PhoneOff", "PhoneOutgoing",
	"PieChart", "Pin", "Play", "PlayCircle", "Plus", "PlusCircle", "PlusSquare", "Pocket", "Power", "Printer",
	"Radio", "RefreshCcw", "RefreshCw", "Repeat", "Rewind", "RotateCcw", "RotateCw", "Rss", "Ruler", "Save",
	"Scissors", "Search", "Send", "Server", "Settings", "Share", "Share2", "Shield", "ShieldOff", "ShoppingBag",
	"ShoppingCart", "Shuffle", "Sidebar", "SkipBack", "SkipForward", "Slack", "Slash", "Sliders", "Smartphone",
	"Smile", "Speaker", "Square", "SquareGantt", "Star", "StopCircle", "Sun", "Sunrise", "Sunset", "Tablet",
	"Tag", "Target", "Terminal", "Thermometer", "ThumbsDown", "ThumbsUp", "ToggleLeft", "ToggleRight", "Tool",
	"Trash", "Trash2", "Trello", "TrendingDown", "TrendingUp", "Triangle", "Truck", "Tv", "Twitter", "Type",
	"Umbrella", "Underline", "Unlock", "Upload", "UploadCloud", "User", "UserCheck", "UserMinus", "UserPlus",
	"UserX", "Users", "Video", "VideoOff", "Voicemail", "Volume", "Volume1", "Volume2", "VolumeX", "Watch",
	"Wifi", "WifiOff", "Wind", "Wrench", "X", "XCircle", "XSquare", "Youtube", "Zap", "ZapOff", "ZoomIn", "ZoomOut",
}

var byName = func() map[string]Glyph {
	m := make(map[string]Glyph, len(curated)+len(tokens))
	for _, g := range curated {
		m[string(g)] = g
	}
	for _, g := range tokens {
		m[string(g)] = g
	}
	return m
}()

// Lookup maps a stored token to a glyph: first the keyword table
// (case-insensitive), then an exact name from the curated set.
func Lookup(token string) (Glyph, bool) {
	token = strings.TrimSpace(token)
	if g, ok := tokens[strings.ToLower(token)]; ok {
		return g, true
	}
	g, ok := byName[token]
	return g, ok
}

// Valid reports whether g belongs to the closed glyph set.
func (g Glyph) Valid() bool {
	_, ok := byName[string(g)]
	return ok
}

// Glyphs returns every renderable glyph name, sorted.
func Glyphs() []Glyph {
	out := make([]Glyph, 0, len(byName))
	for _, g := range byName {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tokens returns the short keywords accepted in service rows, sorted.
func Tokens() []string {
	out := make([]string, 0, len(tokens))
	for t := range tokens {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
