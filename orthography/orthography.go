// Copyright 2024 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package orthography joins word roots and suffixes using English spelling
// rules. For example "artistic" and "ly" are joined as "artistically" and
// "cherry" and "s" as "cherries".
//
// Rules are matched against the root and suffix joined as "root ^ suffix".
package orthography

import (
	"regexp"
	"sync"
)

// Rule is a spelling rule. Replacement is expanded using
// [regexp.Regexp.Expand] syntax.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Rules is an ordered, immutable table of spelling rules.
type Rules struct {
	rules []Rule
}

// orthographyRules are matched against "root ^ suffix".
var orthographyRules = [][2]string{
	// == +ly ==
	// artistic + ly = artistically
	{`^(.*[aeiou]c) \^ ly$`, "${1}ally"},
	// humble + ly = humbly (*humblely)
	// questionable +ly = questionably
	// triple +ly = triply
	{`(.+[aeioubmnp])le \^ ly$`, "${1}ly"},

	// == +ry ==
	// statute + ry = statutory
	{`^(.*t)e \^ (ry|ary)$`, "${1}ory"},
	// confirm +tory = confirmatory (*confirmtory)
	{`(.+)m \^ tor(y|ily)$`, "${1}mator${2}"},
	// supervise +ary = supervisory (*supervisary)
	{`(.+)se \^ ar(y|ies)$`, "${1}sor${2}"},

	// == t +cy ==
	// frequent + cy = frequency (tcy/tecy removal)
	{`^(.*[naeiou])te? \^ cy$`, "${1}cy"},

	// == +s ==
	// establish + s = establishes (sibilant pluralization)
	{`^(.*(?:s|sh|x|z|zh)) \^ s$`, "${1}es"},
	// speech + s = speeches (soft ch pluralization)
	// An "rch" ending is soft unless it follows "gar", "iar" or "nar".
	{`^(.*(?:oa|ea|i|ee|oo|au|ou|l|n|t)ch|(?:.*[^a])?rch|(?:.*[^gin])?arch) \^ s$`, "${1}es"},
	// cherry + s = cherries (consonant + y pluralization)
	{`(.+[bcdfghjklmnpqrstvwxz])y \^ s$`, "${1}ies"},

	// == y ==
	// die+ing = dying
	{`(.+)ie \^ ing$`, "${1}ying"},
	// metallurgy + ist = metallurgist
	{`(.+[cdfghlmnpr])y \^ ist$`, "${1}ist"},
	// beauty + ful = beautiful (y -> i)
	{`(.+[bcdfghjklmnpqrstvwxz])y \^ ([a-hj-xz].*)$`, "${1}i${2}"},

	// == +en ==
	// write + en = written
	{`(.+)te \^ en$`, "${1}tten"},
	// Minessota +en = Minessotan (*Minessotaen)
	{`(.+[ae]) \^ e(n|ns)$`, "${1}${2}"},

	// == +ial ==
	// ceremony +ial = ceremonial (*ceremonyial)
	{`(.+)y \^ (ial|ially)$`, "${1}${2}"},

	// == +if ==
	// spaghetti +ification = spaghettification (*spaghettiification)
	{`(.+)i \^ if(y|ying|ied|ies|ication|ications)$`, "${1}if${2}"},

	// == +ical ==
	// fantastic +ical = fantastical (*fantasticcal)
	{`(.+)ic \^ (ical|ically)$`, "${1}${2}"},
	// epistomology +ical = epistomological
	{`(.+)ology \^ ic(al|ally)$`, "${1}ologic${2}"},
	// oratory +ical = oratorical (*oratoryical)
	{`(.*)ry \^ ica(l|lly|lity)$`, "${1}rica${2}"},

	// == +ist ==
	// radical +ist = radicalist (*radicallist)
	{`(.*[l]) \^ is(t|ts)$`, "${1}is${2}"},

	// == +ity ==
	// complementary +ity = complementarity (*complementaryity)
	{`(.*)ry \^ ity$`, "${1}rity"},
	// disproportional +ity = disproportionality (*disproportionallity)
	{`(.*)l \^ ity$`, "${1}lity"},

	// == +ive, +tive ==
	// perform +tive = performative (*performtive)
	{`(.+)rm \^ tiv(e|ity|ities)$`, "${1}rmativ${2}"},
	// restore +tive = restorative
	{`(.+)e \^ tiv(e|ity|ities)$`, "${1}ativ${2}"},

	// == +ize ==
	// token +ize = tokenize (*tokennize)
	// token +ise = tokenise (*tokennise)
	{`(.+)y \^ iz(e|es|ing|ed|er|ers|ation|ations|able|ability)$`, "${1}iz${2}"},
	{`(.+)y \^ is(e|es|ing|ed|er|ers|ation|ations|able|ability)$`, "${1}is${2}"},
	// conditional +ize = conditionalize (*conditionallize)
	{`(.+)al \^ iz(e|ed|es|ing|er|ers|ation|ations|m|ms|able|ability|abilities)$`, "${1}aliz${2}"},
	{`(.+)al \^ is(e|ed|es|ing|er|ers|ation|ations|m|ms|able|ability|abilities)$`, "${1}alis${2}"},
	// spectacular +ization = spectacularization (*spectacularrization)
	{`(.+)ar \^ iz(e|ed|es|ing|er|ers|ation|ations|m|ms)$`, "${1}ariz${2}"},
	{`(.+)ar \^ is(e|ed|es|ing|er|ers|ation|ations|m|ms)$`, "${1}aris${2}"},

	// category +ize/+ise = categorize/categorise (*categoryize/*categoryise)
	// custom +izable/+isable = customizable/customisable (*custommizable/*custommisable)
	// fantasy +ize = fantasize (*fantasyize)
	{`(.*[lmnty]) \^ iz(e|es|ing|ed|er|ers|ation|ations|m|ms|able|ability|abilities)$`, "${1}iz${2}"},
	{`(.*[lmnty]) \^ is(e|es|ing|ed|er|ers|ation|ations|m|ms|able|ability|abilities)$`, "${1}is${2}"},

	// == +olog ==
	// criminal + ology = criminology
	// criminal + ologist = criminalogist (*criminallologist)
	{`(.+)al \^ olog(y|ist|ists|ical|ically)$`, "${1}olog${2}"},

	// == +ish ==
	// similar +ish = similarish (*similarrish)
	{`(.+)(ar|er|or) \^ ish$`, "${1}${2}ish"},

	// free + ed = freed
	{`(.+e)e \^ (e.+)$`, "${1}${2}"},
	// narrate + ing = narrating (silent e)
	{`(.+[bcdfghjklmnpqrstuvwxz])e \^ ([aeiouy].*)$`, "${1}${2}"},

	// == misc ==
	// defer + ed = deferred (consonant doubling)
	// TODO: skip doubling when the stress is not on the last syllable
	// (e.g. monitor + ed = monitored).
	{`(.*(?:[bcdfghjklmnprstvwxyz]|qu)[aeiou])([bcdfgklmnprtvz]) \^ ([aeiouy].*)$`, "${1}${2}${2}${3}"},
}

// reverseRules are matched against a whole word and expand to a possible
// root of the word.
var reverseRules = [][2]string{
	// artistically = artistic + ly
	{`^(.*[aeiou]c)ally$`, "${1}"},
	// humbly = humble + ly
	{`^(.+[aeioubmnp])ly$`, "${1}le"},
	// statutory = statute + ry
	{`^(.*t)ory$`, "${1}e"},
	// confirmatory = confirm + tory
	{`^(.*)mator(.*)$`, "${1}m"},
	// supervisory = supervise + ary
	{`^(.*)sor(.*)$`, "${1}se"},
	// frequency = frequent + cy
	{`^(.*[naeiou])cy$`, "${1}t"},
	// establishes = establish + s
	{`^(.*(?:s|sh|x|z|zh|ch))es$`, "${1}"},
	// cherries = cherry + s
	{`^(.+[bcdfghjklmnpqrstvwxz])ies$`, "${1}y"},
	// dying = die + ing
	{`^(.*)ying$`, "${1}ie"},
	// metallurgist = metallurgy + ist
	{`^(.+[cdfghlmnpr])ist$`, "${1}y"},
	// beautiful = beauty + ful
	{`^(.+[bcdfghjklmnpqrstvwxz])i[a-hj-xz].*$`, "${1}y"},
	// written = write + en
	{`^(.+)tten$`, "${1}te"},
	// Minessotan = Minessota + en
	{`^(.+[ae])(?:n|ns)$`, "${1}"},
	// ceremonial = ceremony + ial
	{`^(.+)(?:ial|ially)$`, "${1}y"},
	// spaghettification = spaghetti + ification
	{`^(.+)if(?:y|ying|ied|ies|ication|ications)$`, "${1}i"},
	// fantastical = fantastic + ical
	{`^(.+)(?:ical|ically)$`, "${1}"},
	// epistomological = epistomology + ical
	{`^(.+)ologic(?:al|ally)$`, "${1}ology"},
	// oratorical = oratory + ical
	{`^(.*)rica(?:l|lly|lity)$`, "${1}ry"},
	// radicalist = radical + ist
	{`^(.*l)is(?:t|ts)$`, "${1}"},
	// complementarity = complementary + ity
	{`^(.*)rity$`, "${1}ry"},
	// disproportionality = disproportional + ity
	{`^(.*)lity$`, "${1}l"},
	// performative = perform + tive
	{`^(.+)rmativ(?:e|ity|ities)$`, "${1}rm"},
	// restorative = restore + tive
	{`^(.+)ativ(?:e|ity|ities)$`, "${1}e"},
	// tokenize = token + ize
	{`^(.+)iz(?:e|es|ing|ed|er|ers|ation|ations|able|ability)$`, "${1}y"},
	{`^(.+)is(?:e|es|ing|ed|er|ers|ation|ations|able|ability)$`, "${1}y"},
	// conditionalize = conditional + ize
	{`^(.+al)iz(?:e|ed|es|ing|er|ers|ation|ations|m|ms|able|ability|abilities)$`, "${1}"},
	{`^(.+al)is(?:e|ed|es|ing|er|ers|ation|ations|m|ms|able|ability|abilities)$`, "${1}"},
}

func compileRules(table [][2]string) *Rules {
	rules := make([]Rule, 0, len(table))
	for _, r := range table {
		rules = append(rules, Rule{
			Pattern:     regexp.MustCompile(r[0]),
			Replacement: r[1],
		})
	}
	return &Rules{rules: rules}
}

// NewRules compiles the table of rules used to join roots and suffixes.
func NewRules() *Rules {
	return compileRules(orthographyRules)
}

// ReverseRules compiles the table of rules used to find possible roots of a
// word. See [Decompose].
func ReverseRules() *Rules {
	return compileRules(reverseRules)
}

var defaultRules = sync.OnceValue(NewRules)

// DefaultRules returns a process-wide table of rules returned by
// [NewRules]. The table is compiled on first use.
func DefaultRules() *Rules {
	return defaultRules()
}

// Len returns the number of rules in the table.
func (r *Rules) Len() int {
	return len(r.rules)
}

// Rule returns the i-th rule in the table.
func (r *Rules) Rule(i int) Rule {
	return r.rules[i]
}

// expand applies every rule that matches s in table order and returns the
// expanded replacements that are accepted.
func (r *Rules) expand(s string, accept func(string) bool) []string {
	var result []string
	for _, rule := range r.rules {
		m := rule.Pattern.FindStringSubmatchIndex(s)
		if m == nil {
			continue
		}
		expanded := string(rule.Pattern.ExpandString(nil, rule.Replacement, s, m))
		if accept == nil || accept(expanded) {
			result = append(result, expanded)
		}
	}
	return result
}

// Candidates returns possible spellings of root joined with suffix. Every
// rule in rules that matches contributes one candidate, in table order.
// Candidates for which accept returns false are dropped. A nil accept keeps
// all candidates and nil rules uses [DefaultRules].
func Candidates(rules *Rules, root, suffix string, accept func(string) bool) []string {
	if rules == nil {
		rules = DefaultRules()
	}
	return rules.expand(root+" ^ "+suffix, accept)
}

// Decompose returns possible roots of word using a table returned by
// [ReverseRules]. Roots are returned in table order and may repeat.
func Decompose(rules *Rules, word string) []string {
	return rules.expand(word, nil)
}
