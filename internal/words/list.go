package words

var defaultWords = []string{
	"apple", "banana", "guitar", "elephant", "bicycle", "pizza", "castle",
	"rainbow", "volcano", "penguin", "lighthouse", "umbrella", "dragon",
	"sandwich", "telescope", "snowman", "butterfly", "pirate", "rocket",
	"mermaid", "waterfall", "cactus", "skateboard", "octopus", "tornado",
	"giraffe", "kangaroo", "ladder", "mountain", "necklace", "pineapple",
	"robot", "scissors", "toothbrush", "unicorn", "vampire", "windmill",
	"zebra", "anchor", "backpack", "campfire", "dinosaur", "envelope",
	"fireworks", "hamburger", "igloo", "jellyfish", "keyboard", "lemonade",
	"microscope", "notebook", "parachute", "quicksand", "sunflower",
	"treasure", "violin", "wizard", "yo-yo", "ice cream", "hot dog",
	"fire truck", "palm tree", "spider web", "traffic light", "teddy bear",
	"tooth fairy", "roller coaster", "swimming pool", "jack-o'-lantern",
	"birthday cake", "space station", "polar bear", "bow tie", "popcorn",
	"helicopter", "submarine", "sailboat", "headphones", "chess", "bridge",
}
