package seedgen

// adjectives and nouns are closed, fixed, alphabetically sorted dictionaries
// used to disambiguate concatenated-lowercase seeds (e.g. "mistyforge").
var adjectives = []string{
	"ancient", "arid", "ashen", "austere", "autumn", "azure",
	"barren", "bitter", "black", "bleak", "bold", "bright", "broken", "brooding",
	"calm", "cold", "coral", "crimson", "crystal",
	"dark", "dawning", "deep", "distant", "dormant", "dusky", "dusty",
	"echoing", "ember", "emerald", "endless",
	"faded", "faint", "fallow", "feral", "fierce", "fleeting", "forgotten", "frozen",
	"gilded", "glacial", "golden", "gray", "grim",
	"hallowed", "hidden", "hollow", "humble",
	"icy", "idle", "iron", "ivory",
	"jade", "jagged",
	"lingering", "lonely", "lost", "lunar",
	"misty", "molten", "mossy", "murky",
	"narrow", "noble", "northern",
	"obsidian", "old", "opal",
	"pale", "phantom",
	"quiet",
	"radiant", "restless", "ruined", "rusted",
	"sacred", "scarred", "shadowed", "shallow", "silent", "silver", "sleeping", "solemn", "somber", "stark", "stony", "sunken",
	"tangled", "thorned", "timeworn", "twilight",
	"umber",
	"vast", "verdant", "violet",
	"wandering", "weathered", "whispering", "wild", "winter",
	"young",
}

var nouns = []string{
	"anchor", "arch", "atlas",
	"basin", "bastion", "bay", "beacon", "bluff", "bog", "bridge",
	"canyon", "cape", "cavern", "cliff", "cove", "crag", "creek", "crest", "crossing",
	"delta", "den", "dune",
	"edge", "estuary",
	"fell", "fen", "field", "fjord", "forge", "fort", "furrow",
	"glade", "glen", "grove", "gulch", "gully",
	"harbor", "hearth", "heath", "highland", "hill", "hollow",
	"inlet", "isle",
	"keep", "knoll",
	"lagoon", "lake", "ledge", "loch",
	"marsh", "meadow", "mesa", "mire", "moor", "mound", "mountain",
	"overlook",
	"pass", "peak", "plain", "point", "pool",
	"quarry",
	"range", "reach", "reef", "ridge", "rift", "river",
	"shoal", "shore", "sound", "spire", "spring", "strait", "summit", "swamp",
	"terrace", "thicket", "trench", "tundra",
	"vale", "valley", "vault",
	"wash", "watch", "waterfall", "weald", "wetland", "wold",
	"yard",
}

var adjectiveSet = buildSet(adjectives)
var nounSet = buildSet(nouns)

func buildSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// exampleSeeds are shown in user-facing parse error messages.
var exampleSeeds = []string{"MistyForge", "AncientHarbor", "CrimsonRidge", "SilentCove", "VerdantVale"}
