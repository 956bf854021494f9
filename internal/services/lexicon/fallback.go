package lexicon

// fallbackWords is the built-in set used when no word list file is available.
// Small but covers every progressive length up to 8 for short test games.
var fallbackWords = []string{
	"cat", "dog", "bat", "rat", "hat", "mat", "sat", "pat",
	"ant", "ape", "arc", "arm", "bed", "bee", "box", "bun",
	"cap", "cow", "cup", "den", "dew", "ear", "egg", "elf",
	"fan", "fig", "fox", "gem", "gum", "hen", "ice", "ink",
	"jam", "jar", "key", "kit", "lap", "log", "map", "mud",
	"net", "nut", "oak", "owl", "pan", "pig", "oar", "rug",
	"sun", "tap", "urn", "van", "wax", "yak", "zip",
	"bird", "word", "nerd", "curd", "herd", "blue", "glue",
	"acid", "bark", "calm", "dusk", "echo", "fern", "gold",
	"hill", "iron", "jolt", "kelp", "lamp", "moss", "nest",
	"opal", "pond", "quiz", "reef", "sand", "tide", "vine",
	"wolf", "yarn", "zinc",
	"apple", "board", "chair", "dance", "eagle", "fruit",
	"grape", "house", "ivory", "jelly", "knoll", "lemon",
	"mango", "night", "ocean", "plumb", "queen", "river",
	"stone", "tiger", "umbra", "vapor", "wheat", "youth",
	"banana", "friend", "orange", "purple", "school",
	"anchor", "bridge", "candle", "dragon", "ember",
	"forest", "garden", "harbor", "island", "jungle",
	"kernel", "lantern", "meadow", "needle", "orchid",
	"pebble", "quiver", "ribbon", "saddle", "timber",
	"caravan", "dolphin", "emerald", "freckle", "granite",
	"horizon", "javelin", "kingdom", "lagoon", "monsoon",
	"elephant", "giraffe", "internet", "keyboard",
	"backbone", "cardinal", "daffodil", "envelope",
	"firewood", "gazette", "hurricane", "juniper",
}
