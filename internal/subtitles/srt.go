package subtitles

import (
	"io"
	"os"
	"strings"

	"github.com/asticode/go-astisub"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parser extrait les sous-titres d'un fichier, dans l'ordre du fichier.
// Chaque élément est le texte d'une réplique (lignes séparées par "\n").
type Parser interface {
	Captions(path string) ([]string, error)
}

// SRTParser lit des fichiers .srt avec go-astisub.
// Encoding est une étiquette WHATWG ("utf-8", "windows-1252"...) ; un BOM
// UTF-8/UTF-16 en tête de fichier l'emporte toujours.
type SRTParser struct {
	Encoding string
}

// NewSRTParser valide l'encodage dès la construction.
func NewSRTParser(label string) (*SRTParser, error) {
	if _, err := lookupEncoding(label); err != nil {
		return nil, err
	}
	return &SRTParser{Encoding: label}, nil
}

// Captions ouvre path et retourne le texte de chaque réplique.
func (p *SRTParser) Captions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "ouverture du sous-titre", goerr.V("path", path))
	}
	defer f.Close()

	r, err := p.reader(f)
	if err != nil {
		return nil, err
	}

	subs, err := astisub.ReadFromSRT(r)
	if err != nil {
		return nil, goerr.Wrap(err, "lecture srt", goerr.V("path", path))
	}

	captions := make([]string, 0, len(subs.Items))
	for _, item := range subs.Items {
		captions = append(captions, ItemText(item))
	}
	return captions, nil
}

func (p *SRTParser) reader(r io.Reader) (io.Reader, error) {
	enc, err := lookupEncoding(p.Encoding)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// ItemText joint les lignes non vides d'une réplique avec "\n".
// astisub garde la ligne blanche qui termine un bloc : elle est ignorée.
func ItemText(item *astisub.Item) string {
	if item == nil {
		return ""
	}
	lines := make([]string, 0, len(item.Lines))
	for _, l := range item.Lines {
		text := strings.TrimRight(l.String(), "\r\n")
		if text == "" {
			continue
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

func lookupEncoding(label string) (encoding.Encoding, error) {
	if strings.TrimSpace(label) == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, goerr.Wrap(err, "encodage inconnu", goerr.V("encoding", label))
	}
	return enc, nil
}
