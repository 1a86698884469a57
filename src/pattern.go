package skimmer

import (
	"regexp"
	"strings"

	"github.com/skimmer/skimmer/src/algo"
)

// fuzzy
// 'exact
// ^exact-prefix
// exact-suffix$
// ^exact-equal$
// !not-fuzzy
// !'not-exact
// !^not-exact-prefix
// !not-exact-suffix$

type termType int

const (
	termFuzzy termType = iota
	termExact
	termPrefix
	termSuffix
	termEqual
)

type term struct {
	typ           termType
	inv           bool
	text          []rune
	caseSensitive bool
	origText      []rune
}

// Case denotes case-sensitivity of search
type Case int

// Case-sensitivities
const (
	CaseSmart Case = iota
	CaseIgnore
	CaseRespect
)

// Algo selects the fuzzy matching algorithm
type Algo int

// Fuzzy matching algorithms
const (
	AlgoV1 Algo = iota
	AlgoSahilm
)

// Pattern represents search pattern
type Pattern struct {
	exact      bool
	forward    bool
	text       []rune
	terms      []term
	hasInvTerm bool
	cache      *ChunkCache
	procFun    map[termType]algo.MatchFunc
}

var _splitRegex *regexp.Regexp

func init() {
	_splitRegex = regexp.MustCompile(" +")
}

// BuildPattern builds Pattern object from the given arguments. Patterns are
// kept in patternCache since the options they depend on never change while
// the program is running.
func BuildPattern(cache *ChunkCache, patternCache map[string]*Pattern,
	exact bool, fuzzyAlgo Algo, caseMode Case, forward bool, runes []rune) *Pattern {

	asString := strings.TrimLeft(string(runes), " ")
	for strings.HasSuffix(asString, " ") && !strings.HasSuffix(asString, "\\ ") {
		asString = asString[:len(asString)-1]
	}

	if cached, found := patternCache[asString]; found {
		return cached
	}

	terms := parseTerms(exact, caseMode, asString)
	hasInvTerm := false
	for _, term := range terms {
		if term.inv {
			hasInvTerm = true
		}
	}

	ptr := &Pattern{
		exact:      exact,
		forward:    forward,
		text:       []rune(asString),
		terms:      terms,
		hasInvTerm: hasInvTerm,
		cache:      cache,
		procFun:    make(map[termType]algo.MatchFunc)}

	ptr.procFun[termFuzzy] = algo.FuzzyMatch
	if fuzzyAlgo == AlgoSahilm {
		ptr.procFun[termFuzzy] = algo.SahilmMatch
	}
	ptr.procFun[termEqual] = algo.EqualMatch
	ptr.procFun[termExact] = algo.ExactMatchNaive
	ptr.procFun[termPrefix] = algo.PrefixMatch
	ptr.procFun[termSuffix] = algo.SuffixMatch

	patternCache[asString] = ptr
	return ptr
}

func parseTerms(exact bool, caseMode Case, str string) []term {
	str = strings.Replace(str, "\\ ", "\t", -1)
	tokens := _splitRegex.Split(str, -1)
	terms := []term{}
	for _, token := range tokens {
		typ, inv, text := termFuzzy, false, strings.Replace(token, "\t", " ", -1)
		lowerText := strings.ToLower(text)
		caseSensitive := caseMode == CaseRespect ||
			caseMode == CaseSmart && text != lowerText
		if !caseSensitive {
			text = lowerText
		}
		origText := []rune(text)
		if exact {
			typ = termExact
		}

		if strings.HasPrefix(text, "!") {
			inv = true
			text = text[1:]
		}

		if strings.HasPrefix(text, "'") {
			// Flip exactness
			if exact {
				typ = termFuzzy
			} else {
				typ = termExact
			}
			text = text[1:]
		} else if strings.HasPrefix(text, "^") {
			if strings.HasSuffix(text, "$") && len(text) > 1 {
				typ = termEqual
				text = text[1 : len(text)-1]
			} else {
				typ = termPrefix
				text = text[1:]
			}
		} else if strings.HasSuffix(text, "$") {
			typ = termSuffix
			text = text[:len(text)-1]
		}

		if len(text) > 0 {
			terms = append(terms, term{
				typ:           typ,
				inv:           inv,
				text:          []rune(text),
				caseSensitive: caseSensitive,
				origText:      origText})
		}
	}
	return terms
}

// IsEmpty returns true if the pattern is effectively empty
func (p *Pattern) IsEmpty() bool {
	return len(p.terms) == 0
}

// AsString returns the search query in string type
func (p *Pattern) AsString() string {
	return string(p.text)
}

// CacheKey is used to build string to be used as the key of result cache
func (p *Pattern) CacheKey() string {
	cacheableTerms := []string{}
	for _, term := range p.terms {
		if term.inv {
			continue
		}
		cacheableTerms = append(cacheableTerms, string(term.origText))
	}
	return strings.Join(cacheableTerms, " ")
}

// Match returns the list of matches Items in the given Chunk
func (p *Pattern) Match(chunk *Chunk) []Result {
	// ChunkCache: Exact match
	cacheKey := p.CacheKey()
	if !p.hasInvTerm { // Because we're excluding Inv-term from cache key
		if cached := p.cache.Lookup(chunk, cacheKey); cached != nil {
			return cached
		}
	}

	// ChunkCache: Prefix/suffix match
	var matches []Result
	if space := p.cache.Search(chunk, cacheKey); space != nil {
		matches = p.matchResults(space)
	} else {
		matches = p.matchChunk(chunk)
	}

	if !p.hasInvTerm {
		p.cache.Add(chunk, cacheKey, matches)
	}
	return matches
}

func (p *Pattern) matchChunk(chunk *Chunk) []Result {
	matches := []Result{}
	for idx := 0; idx < chunk.count; idx++ {
		if match, ok := p.MatchItem(&chunk.items[idx]); ok {
			matches = append(matches, match)
		}
	}
	return matches
}

func (p *Pattern) matchResults(space []Result) []Result {
	matches := []Result{}
	for _, result := range space {
		if match, ok := p.MatchItem(result.item); ok {
			matches = append(matches, match)
		}
	}
	return matches
}

// MatchItem matches every term against the item. All positive terms must
// match and no inverse term may match.
func (p *Pattern) MatchItem(item *Item) (Result, bool) {
	offsets := []Offset{}
	positions := []int{}
	var bonus int32
	var single algo.Result
	positive := 0
	for _, term := range p.terms {
		pfun := p.procFun[term.typ]
		res := pfun(term.caseSensitive, p.forward, item.text, term.text)
		if term.inv {
			if res.Matched() {
				return Result{}, false
			}
			continue
		}
		if !res.Matched() {
			return Result{}, false
		}
		positive++
		single = res
		bonus += res.Bonus
		offsets = append(offsets, Offset{res.Start, res.End})
		if res.Positions != nil {
			positions = append(positions, res.Positions...)
		} else {
			for pos := int(res.Start); pos < int(res.End); pos++ {
				positions = append(positions, pos)
			}
		}
	}

	var highlight Highlight
	if positive == 1 && single.Positions == nil {
		highlight = RangeHighlight(int(single.Start), int(single.End))
	} else {
		highlight = PositionHighlight(positions)
	}
	return buildResult(item, offsets, bonus, highlight), true
}
