package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleCorpus = "Transactions guarantee ACID properties.\n\n" +
	"B+ trees keep index pages balanced.\n\n" +
	"Normalization removes redundancy from relations."

func TestFilterByTopicsSelectsMatchingParagraphs(t *testing.T) {
	got := FilterByTopics(sampleCorpus, "indexing, acid")
	assert.Contains(t, got, "ACID properties")
	assert.NotContains(t, got, "Normalization")
	// "indexing" does not literally appear, so only the ACID paragraph matches.
	assert.NotContains(t, got, "B+ trees")
}

func TestFilterByTopicsSubstringMatch(t *testing.T) {
	// Matching is substring-based on the lowered paragraph.
	got := FilterByTopics(sampleCorpus, "index")
	assert.Equal(t, "B+ trees keep index pages balanced.", got)
}

func TestFilterByTopicsFailsOpenOnEmptyTopics(t *testing.T) {
	assert.Equal(t, sampleCorpus, FilterByTopics(sampleCorpus, ""))
	assert.Equal(t, sampleCorpus, FilterByTopics(sampleCorpus, " , ,\n"))
}

func TestFilterByTopicsFailsOpenOnZeroMatches(t *testing.T) {
	assert.Equal(t, sampleCorpus, FilterByTopics(sampleCorpus, "quantum entanglement"))
}

func TestFilterByTopicsNewlineSeparatedTopics(t *testing.T) {
	got := FilterByTopics(sampleCorpus, "normalization\nacid")
	assert.Contains(t, got, "ACID")
	assert.Contains(t, got, "Normalization")
	assert.NotContains(t, got, "B+ trees")
}

func TestFilterByTopicsSkipsBlankParagraphs(t *testing.T) {
	corpus := "\n\n  \n\nacid basics here\n\n"
	assert.Equal(t, "acid basics here", FilterByTopics(corpus, "acid"))
}

func TestSplitTopics(t *testing.T) {
	tokens := splitTopics(" Indexing ,\nACID, , transactions\n")
	assert.Equal(t, []string{"indexing", "acid", "transactions"}, tokens)
}
