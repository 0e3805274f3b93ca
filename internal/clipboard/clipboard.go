package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEmptyText   = goerr.New("le texte à copier ne peut pas être vide")
	ErrUnsupported = goerr.New("presse-papier non disponible sur ce système (xclip, xsel ou wl-clipboard requis)")
)

// Available indique si un backend de presse-papier a été trouvé.
func Available() bool {
	return !clipboard.Unsupported
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
func WriteAll(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	if !Available() {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return goerr.Wrap(err, "écriture dans le presse-papier")
	}
	return nil
}
