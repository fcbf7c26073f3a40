package voice

import "strings"

// rule matches when every group has at least one keyword in the prompt.
type rule struct {
	groups [][]string
	voice  string
}

// Order matters: the first matching rule wins.
var rules = []rule{
	{groups: [][]string{{"pirate", "adventurous", "upbeat"}}, voice: "Puck"},
	{groups: [][]string{{"robot", "machine", "artificial"}}, voice: "Charon"},
	{groups: [][]string{{"child", "young", "youthful"}}, voice: "Leda"},
	{groups: [][]string{{"breathy"}}, voice: "Enceladus"},
	{groups: [][]string{{"deep"}, {"male"}}, voice: "Orus"},
	{groups: [][]string{{"deep"}, {"female"}}, voice: "Kore"},
	{groups: [][]string{{"expressive"}, {"male"}}, voice: "Fenrir"},
	{groups: [][]string{{"expressive"}, {"female"}}, voice: "Aoede"},
	{groups: [][]string{{"narrative", "storyteller", "book"}}, voice: "Sadaltager"},
	{groups: [][]string{{"female"}}, voice: "Despina"},
	{groups: [][]string{{"male"}}, voice: "Iapetus"},
}

// Select maps a free-text prompt to a voice name. It never fails: prompts
// matching no rule get Default.
func Select(prompt string) string {
	p := strings.ToLower(prompt)
	for _, r := range rules {
		if r.matches(p) {
			return r.voice
		}
	}
	return Default
}

func (r rule) matches(p string) bool {
	for _, group := range r.groups {
		found := false
		for _, kw := range group {
			if contains(p, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// contains is a substring test, except "male" never matches inside "female".
func contains(p, kw string) bool {
	if kw != "male" {
		return strings.Contains(p, kw)
	}
	for i := 0; ; {
		idx := strings.Index(p[i:], kw)
		if idx < 0 {
			return false
		}
		at := i + idx
		if at < 2 || p[at-2:at] != "fe" {
			return true
		}
		i = at + len(kw)
	}
}
