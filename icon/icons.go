package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Question
	Play
	Pause
	Trash
	Episode
)

// icons is the global registry mapping identifiers to their multi-variant definitions.
var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "x",
		kaomoji: "(┬┬﹏┬┬)",
		squares: "▨",
	},
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "+",
		kaomoji: "(─‿‿─)",
		squares: "▣",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(－‸ლ)",
		squares: "▤",
	},
	Question: {
		emoji:   "❓",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・ ) ?",
		squares: "▧",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "ᕕ( ᐛ )ᕗ",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣o￣)zzz",
		squares: "▮▮",
	},
	Trash: {
		emoji:   "🗑️",
		nerd:    "",
		plain:   "-",
		kaomoji: "(ノಠ益ಠ)ノ",
		squares: "▼",
	},
	Episode: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "#",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "□",
	},
}
