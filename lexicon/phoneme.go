package lexicon

// Indonesian orthography-to-phoneme tables.
// Digraphs are checked before single letters (longest match).
var indonesianPhonemes = []struct {
	grapheme string
	phoneme  string
}{
	// 二重字
	{"ng", "ŋ"},
	{"ny", "ɲ"},
	{"sy", "ʃ"},
	{"kh", "x"},

	// 単独文字
	{"a", "a"},
	{"b", "b"},
	{"c", "tʃ"},
	{"d", "d"},
	{"e", "ə"}, // schwa and /e/ are not distinguished
	{"f", "f"},
	{"g", "g"},
	{"h", "h"},
	{"i", "i"},
	{"j", "dʒ"},
	{"k", "k"},
	{"l", "l"},
	{"m", "m"},
	{"n", "n"},
	{"o", "o"},
	{"p", "p"},
	{"q", "k"},
	{"r", "r"},
	{"s", "s"},
	{"t", "t"},
	{"u", "u"},
	{"v", "v"},
	{"w", "w"},
	{"x", "ks"},
	{"y", "j"},
	{"z", "z"},
}

var (
	digraphMap map[string]string // 2-rune entries
	singleMap  map[rune]string   // 1-rune entries
)

func init() {
	digraphMap = make(map[string]string)
	singleMap = make(map[rune]string)
	for _, e := range indonesianPhonemes {
		runes := []rune(e.grapheme)
		if len(runes) == 2 {
			digraphMap[e.grapheme] = e.phoneme
		} else {
			singleMap[runes[0]] = e.phoneme
		}
	}
}

// Standardize maps a raw phoneme or letter string onto the standard
// Indonesian phoneme inventory. The scan is greedy left to right over code
// points: a digraph match consumes two code points, otherwise a single
// letter is mapped, otherwise the code point is copied through unchanged.
// Spaces and punctuation are preserved.
func Standardize(raw string) string {
	runes := []rune(raw)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); {
		if i+1 < len(runes) {
			if ph, ok := digraphMap[string(runes[i:i+2])]; ok {
				out = append(out, []rune(ph)...)
				i += 2
				continue
			}
		}
		if ph, ok := singleMap[runes[i]]; ok {
			out = append(out, []rune(ph)...)
		} else {
			out = append(out, runes[i])
		}
		i++
	}
	return string(out)
}
