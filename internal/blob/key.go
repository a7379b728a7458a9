package blob

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

const (
	tokenLength   = 13
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// keyPrefix matches the timestamp and random token that GenerateKey prepends.
var keyPrefix = regexp.MustCompile(`^\d{13}-[a-z0-9]{13}-`)

// KeyGenerator derives storage keys of the form
// "<millis>-<token>-<base>[.<ext>]".
type KeyGenerator struct {
	Now  func() time.Time
	Rand io.Reader
}

// DefaultKeyGenerator uses the wall clock and crypto/rand.
var DefaultKeyGenerator = &KeyGenerator{Now: time.Now, Rand: rand.Reader}

// GenerateKey derives a fresh key for filename using DefaultKeyGenerator.
func GenerateKey(filename string) string {
	key, err := DefaultKeyGenerator.Generate(filename)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Sprintf("blob: generate key: %v", err))
	}
	return key
}

// Generate derives a key for filename. The name is split at its last dot;
// a name without a dot keeps no extension.
func (g *KeyGenerator) Generate(filename string) (string, error) {
	base, ext := splitExt(filename)

	token, err := g.token()
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%d-%s-%s", g.Now().UnixMilli(), token, base)
	if ext != "" {
		key += "." + ext
	}
	return key, nil
}

// token draws tokenLength characters uniformly from tokenAlphabet. Bytes that
// would bias the modulo are rejected.
func (g *KeyGenerator) token() (string, error) {
	const limit = 256 - 256%len(tokenAlphabet)

	out := make([]byte, 0, tokenLength)
	buf := make([]byte, tokenLength*2)
	for len(out) < tokenLength {
		if _, err := io.ReadFull(g.Rand, buf); err != nil {
			return "", fmt.Errorf("read random token: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == tokenLength {
				break
			}
		}
	}
	return string(out), nil
}

func splitExt(filename string) (base, ext string) {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return filename, ""
	}
	return filename[:i], filename[i+1:]
}

// IsKey reports whether s already carries a generated key prefix.
func IsKey(s string) bool {
	return keyPrefix.MatchString(s)
}

// OriginalName strips the generated prefix from key. Keys without the prefix
// are returned unchanged.
func OriginalName(key string) string {
	return keyPrefix.ReplaceAllString(key, "")
}
