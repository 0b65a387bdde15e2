package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/testutil"
)

func sharedNameIndex() *TopicIndex {
	return NewTopicIndex(domain.WithTopicIDs([]domain.Subject{
		testutil.NewTestSubject("Mathematics", "Limits", "Vectors"),
		testutil.NewTestSubject("Physics", "Vectors", "Optics"),
	}))
}

func TestTopicIndex_ResolvePrefersID(t *testing.T) {
	ix := sharedNameIndex()

	ref, ok := ix.Resolve("t04", "Mathematics", "Limits")

	require.True(t, ok)
	assert.Equal(t, "Optics", ref.TopicName)
}

func TestTopicIndex_ResolveFallsBackToNamePair(t *testing.T) {
	ix := sharedNameIndex()

	ref, ok := ix.Resolve("bogus", " physics ", "VECTORS")

	require.True(t, ok)
	assert.Equal(t, "t03", ref.TopicID)
}

func TestTopicIndex_ResolveAmbiguousBareNameFails(t *testing.T) {
	ix := sharedNameIndex()

	_, ok := ix.Resolve("", "", "Vectors")
	assert.False(t, ok)

	ref, ok := ix.Resolve("", "", "optics")
	require.True(t, ok)
	assert.Equal(t, "Physics", ref.SubjectName)
}

func TestTopicIndex_ResolveMention(t *testing.T) {
	ix := sharedNameIndex()

	cases := []struct {
		mention string
		hint    string
		wantID  string
		ok      bool
	}{
		{"t01", "", "t01", true},
		{"Physics / Vectors", "Mathematics", "t03", true},
		{"Mathematics: Vectors", "Physics", "t02", true},
		{"Vectors", "Physics", "t03", true},
		{"Vectors", "Mathematics", "t02", true},
		{"Thermodynamics", "Physics", "", false},
		{"  ", "Physics", "", false},
	}
	for _, tc := range cases {
		ref, ok := ix.ResolveMention(tc.mention, tc.hint)
		assert.Equal(t, tc.ok, ok, "mention=%q", tc.mention)
		assert.Equal(t, tc.wantID, ref.TopicID, "mention=%q", tc.mention)
	}
}

func TestTopicIndex_RefsInInputOrder(t *testing.T) {
	ix := sharedNameIndex()

	refs := ix.Refs()

	require.Len(t, refs, 4)
	assert.Equal(t, []string{"t01", "t02", "t03", "t04"},
		[]string{refs[0].TopicID, refs[1].TopicID, refs[2].TopicID, refs[3].TopicID})

	topic, subject := ix.Topic(refs[2])
	assert.Equal(t, "Vectors", topic.Name)
	assert.Equal(t, "Physics", subject.Name)
}

func TestIndexFromRefs(t *testing.T) {
	ix := IndexFromRefs([]domain.TopicRef{
		{TopicID: "a1", TopicName: "Limits", SubjectName: "Mathematics"},
		{TopicName: "Optics", SubjectName: "Physics"},
	})

	ref, ok := ix.Resolve("", "Physics", "Optics")
	require.True(t, ok)
	assert.Empty(t, ref.TopicID)
	assert.Equal(t, 2, ix.Len())
}
