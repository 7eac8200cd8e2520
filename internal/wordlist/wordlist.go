// Package wordlist provides the embedded dictionary used for memorable
// passwords. Words are short, common, and unambiguous when spoken.
package wordlist

// words is kept sorted for easy review. Entries are lowercase ASCII.
var words = []string{
	"acid", "acorn", "alarm", "album", "alien", "alley", "amber", "anchor",
	"angle", "ankle", "apple", "apron", "arch", "arrow", "atlas", "atom",
	"attic", "audio", "bacon", "badge", "bagel", "banjo", "barn", "basil",
	"beach", "beacon", "bean", "beard", "bell", "bench", "berry", "bike",
	"birch", "bison", "blade", "blaze", "bloom", "board", "boat", "bolt",
	"bonus", "book", "boot", "bottle", "bounce", "brick", "bridge", "brook",
	"broom", "brush", "bubble", "bucket", "budget", "bugle", "bunny", "burst",
	"cabin", "cable", "cactus", "camel", "camera", "candle", "canoe", "canyon",
	"carbon", "cargo", "carpet", "castle", "cedar", "cello", "chalk", "cherry",
	"chess", "chief", "chime", "circle", "citrus", "claw", "clay", "cliff",
	"clock", "cloud", "clover", "cobalt", "cocoa", "comet", "copper", "coral",
	"cotton", "cougar", "cradle", "crane", "crater", "crayon", "creek", "crisp",
	"crown", "crumb", "cycle", "daisy", "dawn", "delta", "denim", "desert",
	"diesel", "dingo", "dome", "donkey", "dragon", "drift", "drum", "dune",
	"eagle", "easel", "echo", "eclair", "ember", "engine", "fable", "falcon",
	"feast", "fern", "ferry", "fiddle", "field", "flame", "flock", "flute",
	"foam", "forest", "fossil", "fox", "frost", "galaxy", "gecko", "gem",
	"geyser", "ginger", "glacier", "glade", "globe", "goose", "gorge", "granite",
	"grape", "gravel", "grove", "guitar", "harbor", "hawk", "hazel", "helmet",
	"heron", "hill", "hinge", "honey", "hoof", "hoop", "horizon", "humid",
	"husk", "icicle", "igloo", "inlet", "iris", "island", "ivory", "jacket",
	"jade", "jaguar", "jelly", "jigsaw", "jungle", "kayak", "kettle", "kiosk",
	"kiwi", "koala", "lagoon", "lantern", "lava", "ledge", "lemon", "lentil",
	"lilac", "lily", "lizard", "llama", "lobster", "locket", "lotus", "lunar",
	"magnet", "mango", "maple", "marble", "marsh", "meadow", "melon", "mesa",
	"meteor", "mint", "mist", "mole", "moose", "moss", "moth", "mural",
	"nectar", "nest", "newt", "noble", "north", "nugget", "oak", "oasis",
	"ocean", "olive", "onion", "opal", "orbit", "orchid", "otter", "owl",
	"oyster", "palm", "panda", "pansy", "parrot", "peach", "pearl", "pebble",
	"pecan", "pepper", "petal", "pier", "pigeon", "pine", "planet", "plum",
	"polar", "pond", "poppy", "prairie", "prism", "pumpkin", "quail", "quartz",
	"quill", "rabbit", "raccoon", "radar", "radish", "raft", "rain", "ranch",
	"raven", "reef", "ridge", "ripple", "river", "robin", "rocket", "rose",
	"ruby", "saddle", "salmon", "sand", "sapphire", "scout", "seal", "shadow",
	"shell", "shore", "silver", "sky", "slate", "sleet", "slope", "snow",
	"solar", "sparrow", "spice", "spiral", "spruce", "squash", "stone", "storm",
	"stream", "summit", "sunset", "swan", "syrup", "tango", "tapir", "teal",
	"temple", "thorn", "tiger", "timber", "topaz", "torch", "trail", "tulip",
	"tundra", "turtle", "valley", "velvet", "violet", "vista", "wagon", "walnut",
	"walrus", "wave", "wheat", "willow", "wind", "wolf", "yarn", "zebra",
}

// Len reports the dictionary size.
func Len() int { return len(words) }

// Word returns the word at index i.
func Word(i int) string { return words[i] }
