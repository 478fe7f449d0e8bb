package matching

import (
	"math"
	"sort"

	"github.com/jonathan/richat-staffing/internal/nlp"
)

// frenchStopwords are dropped before vectorization
var frenchStopwords = map[string]bool{
	"a": true, "au": true, "aux": true, "avec": true, "ce": true, "ces": true, "dans": true,
	"de": true, "des": true, "du": true, "elle": true, "en": true, "et": true, "est": true,
	"il": true, "ils": true, "la": true, "le": true, "les": true, "leur": true, "lui": true,
	"ma": true, "mais": true, "me": true, "mes": true, "ne": true, "nous": true, "on": true,
	"ou": true, "par": true, "pas": true, "pour": true, "qu": true, "que": true, "qui": true,
	"sa": true, "se": true, "ses": true, "son": true, "sur": true, "ta": true, "te": true,
	"tes": true, "un": true, "une": true, "vos": true, "votre": true, "vous": true, "d": true,
	"l": true, "s": true, "y": true, "ete": true, "etre": true, "sont": true, "cette": true,
	"afin": true, "ainsi": true, "tout": true, "tous": true, "toutes": true,
}

// terms returns the unigrams and bigrams of a text after stopword removal
func terms(text string) []string {
	var words []string
	for _, tok := range nlp.Tokens(nlp.NormalizeTerm(text)) {
		if !frenchStopwords[tok] {
			words = append(words, tok)
		}
	}
	out := make([]string, 0, 2*len(words))
	out = append(out, words...)
	for i := 0; i+1 < len(words); i++ {
		out = append(out, words[i]+" "+words[i+1])
	}
	return out
}

// TFIDFCosine is the cosine similarity of the TF-IDF vectors of two texts,
// with smoothed inverse document frequencies computed over the pair.
// It returns 0 when either text has no terms.
func TFIDFCosine(a, b string) float64 {
	ta, tb := termFrequencies(a), termFrequencies(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	const docs = 2.0
	idf := func(term string) float64 {
		df := 0.0
		if ta[term] > 0 {
			df++
		}
		if tb[term] > 0 {
			df++
		}
		return math.Log((1+docs)/(1+df)) + 1
	}

	// sorted iteration keeps the floating point sums reproducible
	var dot, na, nb float64
	for _, term := range sortedTerms(ta) {
		w := ta[term] * idf(term)
		na += w * w
		if fb, ok := tb[term]; ok {
			dot += w * fb * idf(term)
		}
	}
	for _, term := range sortedTerms(tb) {
		w := tb[term] * idf(term)
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func termFrequencies(text string) map[string]float64 {
	tf := make(map[string]float64)
	for _, t := range terms(text) {
		tf[t]++
	}
	return tf
}

func sortedTerms(tf map[string]float64) []string {
	keys := make([]string, 0, len(tf))
	for k := range tf {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
