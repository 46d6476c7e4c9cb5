package classifier

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 5000

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		der die das und in zu den von ist mit sich des auf für nicht ein eine als
		auch es an werden aus er hat dass sie nach wird bei einer um am sind noch
		wie einem über so zum kann nur ihr seine ich oder aber vor zur bis mehr
		durch man sehr diese wenn war haben wurde alle können diesem dieser
		the and for are but not you all any can had her was one our out has have
		this that with from they will would there their what which when your
	`) {
		stopWords[w] = struct{}{}
	}
}

// Tokenize lowercases text, splits it on non-alphanumeric runes and drops
// stop words and tokens of two runes or less.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// terms returns unigrams followed by bigrams of adjacent tokens.
func terms(tokens []string) []string {
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 1; i < len(tokens); i++ {
		out = append(out, tokens[i-1]+" "+tokens[i])
	}
	return out
}

// Vectorizer builds L2-normalized TF-IDF vectors over unigrams and bigrams.
// The zero value is unfitted; Transform on it returns nil.
type Vectorizer struct {
	maxFeatures int
	vocab       map[string]int
	idf         []float64
}

// NewVectorizer creates a vectorizer keeping at most maxFeatures terms.
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// Fit learns the vocabulary and idf weights from docs and returns their
// vectors. Documents without any known term get a nil vector.
func (v *Vectorizer) Fit(docs []string) [][]float64 {
	docTerms := make([][]string, len(docs))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for i, d := range docs {
		docTerms[i] = terms(Tokenize(d))
		seen := make(map[string]struct{}, len(docTerms[i]))
		for _, t := range docTerms[i] {
			corpusFreq[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	vocabulary := make([]string, 0, len(corpusFreq))
	for t := range corpusFreq {
		vocabulary = append(vocabulary, t)
	}
	sort.Slice(vocabulary, func(i, j int) bool {
		if corpusFreq[vocabulary[i]] != corpusFreq[vocabulary[j]] {
			return corpusFreq[vocabulary[i]] > corpusFreq[vocabulary[j]]
		}
		return vocabulary[i] < vocabulary[j]
	})
	if len(vocabulary) > v.maxFeatures {
		vocabulary = vocabulary[:v.maxFeatures]
	}
	sort.Strings(vocabulary)

	n := float64(len(docs))
	v.vocab = make(map[string]int, len(vocabulary))
	v.idf = make([]float64, len(vocabulary))
	for i, t := range vocabulary {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i := range docTerms {
		vectors[i] = v.vectorize(docTerms[i])
	}
	return vectors
}

// Transform vectorizes text with the fitted vocabulary.
func (v *Vectorizer) Transform(text string) []float64 {
	if len(v.vocab) == 0 {
		return nil
	}
	return v.vectorize(terms(Tokenize(text)))
}

// Features returns the vocabulary size.
func (v *Vectorizer) Features() int {
	return len(v.vocab)
}

func (v *Vectorizer) vectorize(ts []string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, t := range ts {
		if i, ok := v.vocab[t]; ok {
			vec[i]++
		}
	}
	floats.Mul(vec, v.idf)

	norm := floats.Norm(vec, 2)
	if norm == 0 {
		return nil
	}
	floats.Scale(1/norm, vec)
	return vec
}

// Cosine returns the cosine similarity of two normalized vectors.
func Cosine(a, b []float64) float64 {
	if a == nil || b == nil || len(a) != len(b) {
		return 0
	}
	return floats.Dot(a, b)
}
