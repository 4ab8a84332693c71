package heuristic

import "golang.org/x/text/encoding/unicode"

// decode reinterprets raw bytes as UTF-8 text. A leading byte order mark is
// dropped and invalid sequences are replaced with U+FFFD. No attempt is made
// to honor the document's real encoding, compression or object structure.
func decode(data []byte) (string, error) {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
