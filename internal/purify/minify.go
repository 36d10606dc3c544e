package purify

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

const mediaTypeCSS = "text/css"

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(mediaTypeCSS, css.Minify)
	return m
}

// Minify removes whitespace, comments and redundant syntax from CSS
func Minify(src []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := minifier.Minify(mediaTypeCSS, &out, bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("minify: %w", err)
	}
	return out.Bytes(), nil
}
