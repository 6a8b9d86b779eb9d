// Package roomname generates memorable room ids such as
// "kitten-waffle-stardust-happy".
package roomname

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// Words per generated id. Each word comes from a different list.
const Words = 4

// maxAttempts bounds how many ids Generate tries before giving up.
const maxAttempts = 16

var ErrExhausted = errors.New("roomname: no free room id found")

var animals = []string{
	"kitten", "puppy", "bunny", "panda", "koala", "fox", "otter", "hedgehog", "squirrel", "hamster",
	"chick", "duckling", "fawn", "foal", "lamb", "calf", "porcupine", "raccoon", "skunk", "mole",
	"mouse", "rat", "ferret", "weasel", "beaver", "seahorse", "starfish", "dolphin", "whale", "narwhal",
	"penguin", "flamingo", "pelican", "swallow", "sparrow", "robin", "toucan", "parrot", "canary", "cockatoo",
}

var dishes = []string{
	"pancake", "waffle", "sushi", "ramen", "curry", "taco", "burrito", "biryani", "paella", "risotto",
	"lasagna", "pizza", "burger", "salad", "soup", "stew", "dumpling", "noodle", "omelette", "quiche",
	"sandwich", "kebab", "shawarma", "fondue", "pierogi", "gnocchi", "falafel", "samosa", "poutine", "dimsum",
}

var names = []string{
	"alice", "bob", "charlie", "daisy", "ella", "finn", "grace", "henry", "isla", "jack",
	"kai", "luna", "mia", "noah", "olivia", "peter", "quinn", "rachel", "sam", "tina",
	"uma", "victor", "winnie", "xavier", "yara", "zoe", "aaron", "bella", "carlos", "diana",
}

var randomWords = []string{
	"sunbeam", "stardust", "pepper", "muffin", "bubble", "sprout", "glimmer", "whisker", "echo", "jelly",
	"marble", "maple", "cocoa", "hazel", "breeze", "meadow", "willow", "ember", "peppermint", "cinnamon",
	"poppy", "lucky", "pixel", "biscuit", "cupcake", "nugget", "crumb", "toffee", "sprinkle", "twig",
}

// Modifiers and fantasy words.
var adjectives = []string{
	"tiny", "happy", "sleepy", "fluffy", "sparkly", "cheery", "silly", "jolly", "cozy", "shiny",
	"golden", "silver", "crimson", "emerald", "purple", "blue", "red", "green", "bright", "gentle",
	"brave", "calm", "swift", "silent", "noisy", "bouncy", "fuzzy", "plucky", "merry", "peppy",
}

var extras = []string{
	"dragon", "unicorn", "griffin", "phoenix", "fairy", "gnome", "sprite", "pixie", "mermaid", "elf",
	"hobbit", "otterly", "purr", "meow", "woof", "chirp", "splash", "drizzle", "thimble", "button",
	"lantern", "puddle", "pebble", "cottage", "rocket", "comet", "orbit", "nebula", "canyon", "ridge",
}

var lists = [][]string{animals, dishes, names, randomWords, adjectives, extras}

// Generate returns a fresh hyphenated id. taken reports ids already in use
// and may be nil.
func Generate(taken func(id string) bool) (string, error) {
	for range maxAttempts {
		id, err := generate()
		if err != nil {
			return "", err
		}
		if taken == nil || !taken(id) {
			return id, nil
		}
	}
	return "", ErrExhausted
}

func generate() (string, error) {
	// Partial Fisher-Yates over the list indices picks distinct lists.
	order := make([]int, len(lists))
	for i := range order {
		order[i] = i
	}
	words := make([]string, 0, Words)
	for i := range Words {
		j, err := randomIndex(len(order) - i)
		if err != nil {
			return "", err
		}
		order[i], order[i+j] = order[i+j], order[i]

		list := lists[order[i]]
		k, err := randomIndex(len(list))
		if err != nil {
			return "", err
		}
		words = append(words, list[k])
	}
	return strings.Join(words, "-"), nil
}

// randomIndex returns a cryptographically secure index in [0, n).
func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
