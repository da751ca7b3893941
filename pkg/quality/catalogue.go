package quality

import "regexp"

// uncertaintyPatterns are scanned against the whole response; every match
// across every pattern counts toward the single emitted issue's severity.
// "i think"/"i believe" exclude an immediately following " that" (emulating
// a negative lookahead RE2 cannot express directly; see uncertaintyLookaheadExclusions).
var uncertaintyPatterns = mustCompile([]string{
	`i'?m not (?:entirely |completely |fully )?sure`,
	`i'?m not certain`,
	`i'?m uncertain`,
	`might be`,
	`may be`,
	`possibly`,
	`perhaps`,
	`it seems like`,
	`it appears (?:to be |that )`,
	`could be`,
	`probably`,
	`not 100% sure`,
	`hard to say`,
	`difficult to determine`,
	`i don'?t (?:really )?know`,
	`(?:this|that) is (?:just )?(?:a |my )?guess`,
	`if i had to guess`,
	`take this with a grain of salt`,
})

var uncertaintyLookaheadExclusions = []struct {
	base    *regexp.Regexp
	exclude string
}{
	{mustCompileOne(`i think`), " that"},
	{mustCompileOne(`i believe`), " that"},
}

var incompletePatterns = mustCompile([]string{
	`\.\.\.\s*$`,
	`…\s*$`,
	`(?:etc|and so on|and more|and others)\s*\.?\s*$`,
	`:\s*$`,
	`\d+\.\s*$`,
	`(?s)(?:First|1\.)[^.]*$`,
	`to be continued`,
	`i'?ll continue`,
	`(?s)let me know if you.{0,30}$`,
})

var failedReasoningPatterns = mustCompile([]string{
	`i cannot (?:help|assist|provide|answer)`,
	`i am unable to`,
	`i'?m unable to`,
	`i don'?t have (?:the |enough )?(?:ability|capability|information|access)`,
	`(?:this|that) is (?:beyond|outside) (?:my|the) (?:capabilities|scope|knowledge)`,
	`(?s)i apologize.{0,50}cannot`,
	`(?s)i'?m sorry.{0,30}(?:cannot|can't|unable)`,
	`(?s)unfortunately.{0,30}(?:cannot|can't|unable)`,
	`i'?m not able to`,
})

var refusalPatterns = mustCompile([]string{
	`i (?:cannot|can't|won't|will not) (?:help|assist) with (?:that|this)`,
	`(?:this|that) (?:request|question) (?:is|seems) (?:inappropriate|harmful)`,
	`i'?m not (?:going to|able to) (?:help|assist) with`,
	`(?:that's|this is) not something i can`,
	`i have to decline`,
	`i must refuse`,
})

func mustCompile(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, mustCompileOne(p))
	}
	return compiled
}

func mustCompileOne(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return regexp.MustCompile(`a\bz`) // never matches; malformed entries are dropped silently
	}
	return re
}
