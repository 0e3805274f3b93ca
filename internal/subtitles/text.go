package subtitles

import "strings"

// Concat colle les répliques non vides, chacune suivie d'un espace.
// Les répliques vides ne produisent ni texte ni séparateur :
// ["Hello", "", "world"] -> "Hello world ".
func Concat(captions []string) string {
	var b strings.Builder
	for _, c := range captions {
		if len(c) == 0 {
			continue
		}
		b.WriteString(c)
		b.WriteString(" ")
	}
	return b.String()
}

// TextFromFile : parse + Concat
func TextFromFile(p Parser, path string) (string, error) {
	captions, err := p.Captions(path)
	if err != nil {
		return "", err
	}
	return Concat(captions), nil
}
