package citations

import (
	"strings"
	"sync"
	"unicode"

	"github.com/sirupsen/logrus"
)

// AliasProvider supplies curated aliases for a brand (editorial aliases,
// domain-derived aliases). Curated aliases are unioned with the generated
// variants and take precedence in ordering.
type AliasProvider interface {
	Aliases(brandName string) ([]string, error)
}

// AliasResolver expands a brand name into the set of textual variants used
// as search keys. Resolution is deterministic and pure, so results are
// cached for the process lifetime. The cache is read-mostly: rebuilt on
// miss under a write lock, recomputation is always safe.
type AliasResolver struct {
	mu       sync.RWMutex
	cache    map[string][]string
	provider AliasProvider
}

// NewAliasResolver creates a resolver. provider may be nil.
func NewAliasResolver(provider AliasProvider) *AliasResolver {
	return &AliasResolver{
		cache:    make(map[string][]string),
		provider: provider,
	}
}

// Resolve returns the ordered alias set for a brand, canonical name first.
func (r *AliasResolver) Resolve(brandName string) ([]string, error) {
	if err := validateBrandName(brandName); err != nil {
		return nil, err
	}

	r.mu.RLock()
	cached, ok := r.cache[brandName]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	aliases := []string{brandName}

	if r.provider != nil {
		curated, err := r.provider.Aliases(brandName)
		if err != nil {
			// Curated aliases are an enrichment; fall back to the
			// generated variants when the provider is unavailable.
			logrus.Warnf("Curated alias lookup failed for %q: %v", brandName, err)
		} else {
			aliases = appendUnique(aliases, curated...)
		}
	}

	aliases = appendUnique(aliases, generateVariants(brandName)...)
	aliases = appendLowercase(aliases, brandName)

	r.mu.Lock()
	r.cache[brandName] = aliases
	r.mu.Unlock()

	return aliases, nil
}

func generateVariants(brandName string) []string {
	var variants []string

	if strings.Contains(brandName, " ") {
		variants = append(variants,
			strings.ReplaceAll(brandName, " ", ""),
			strings.ReplaceAll(brandName, " ", "-"),
			strings.ReplaceAll(brandName, " ", "_"),
		)
	}

	return variants
}

// appendLowercase always carries the lower-cased form of the name. The
// check is exact, not folded: case-insensitive dedup would swallow it for
// any name containing an uppercase letter.
func appendLowercase(aliases []string, brandName string) []string {
	lower := strings.ToLower(brandName)
	for _, a := range aliases {
		if a == lower {
			return aliases
		}
	}
	return append(aliases, lower)
}

// appendUnique appends values not already present, case-insensitively.
func appendUnique(aliases []string, values ...string) []string {
	for _, v := range values {
		seen := false
		for _, a := range aliases {
			if strings.EqualFold(a, v) {
				seen = true
				break
			}
		}
		if !seen {
			aliases = append(aliases, v)
		}
	}
	return aliases
}

func validateBrandName(brandName string) error {
	trimmed := strings.TrimSpace(brandName)
	if trimmed == "" {
		return &AliasError{Brand: brandName, Reason: "empty name"}
	}

	hasWord := false
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return &AliasError{Brand: brandName, Reason: "control characters in name"}
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasWord = true
		}
	}
	if !hasWord {
		return &AliasError{Brand: brandName, Reason: "no letters or digits in name"}
	}

	return nil
}
