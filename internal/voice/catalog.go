package voice

import "sort"

type Voice struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

const Default = "Zephyr"

var voices = map[string]Voice{
	"Puck": {
		Name:        "Puck",
		Description: "Upbeat, adventurous voice for energetic characters.",
	},
	"Charon": {
		Name:        "Charon",
		Description: "Informative, even voice suited to robots and machines.",
	},
	"Leda": {
		Name:        "Leda",
		Description: "Youthful voice for children and young characters.",
	},
	"Enceladus": {
		Name:        "Enceladus",
		Description: "Breathy, soft voice.",
	},
	"Orus": {
		Name:        "Orus",
		Description: "Firm, deep male voice.",
	},
	"Kore": {
		Name:        "Kore",
		Description: "Firm, deep female voice.",
	},
	"Fenrir": {
		Name:        "Fenrir",
		Description: "Excitable, expressive male voice.",
	},
	"Aoede": {
		Name:        "Aoede",
		Description: "Breezy, expressive female voice.",
	},
	"Sadaltager": {
		Name:        "Sadaltager",
		Description: "Knowledgeable voice for narrators and storytellers.",
	},
	"Despina": {
		Name:        "Despina",
		Description: "Smooth female voice.",
	},
	"Iapetus": {
		Name:        "Iapetus",
		Description: "Clear male voice.",
	},
	"Zephyr": {
		Name:        "Zephyr",
		Description: "Bright general-purpose voice.",
	},
}

func GetVoice(name string) (Voice, bool) {
	v, exists := voices[name]
	return v, exists
}

// Catalog returns every known voice sorted by name.
func Catalog() []Voice {
	list := make([]Voice, 0, len(voices))
	for _, v := range voices {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
