package intelligence

import (
	"strings"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// TopicIndex resolves topic mentions in model responses back to input topics.
// Lookup is by stable id first, then by (subject, topic) name pair.
type TopicIndex struct {
	refs     []domain.TopicRef
	topics   map[string]domain.Topic
	subjects map[string]domain.Subject
	byID     map[string]int
	byPair   map[string]int
	byName   map[string][]int
}

// NewTopicIndex indexes subjects whose topics already carry ids
// (see domain.WithTopicIDs).
func NewTopicIndex(subjects []domain.Subject) *TopicIndex {
	ix := newTopicIndex()
	for _, s := range subjects {
		for _, t := range s.Topics {
			ix.add(domain.TopicRef{TopicID: t.ID, TopicName: t.Name, SubjectName: s.Name}, t, s)
		}
	}
	return ix
}

// IndexFromRefs builds an index from bare refs, for schedules that carry no
// subject list.
func IndexFromRefs(refs []domain.TopicRef) *TopicIndex {
	ix := newTopicIndex()
	for _, r := range refs {
		ix.add(r, domain.Topic{ID: r.TopicID, Name: r.TopicName}, domain.Subject{Name: r.SubjectName})
	}
	return ix
}

func newTopicIndex() *TopicIndex {
	return &TopicIndex{
		topics:   make(map[string]domain.Topic),
		subjects: make(map[string]domain.Subject),
		byID:     make(map[string]int),
		byPair:   make(map[string]int),
		byName:   make(map[string][]int),
	}
}

func (ix *TopicIndex) add(ref domain.TopicRef, t domain.Topic, s domain.Subject) {
	key := ref.Key()
	if _, dup := ix.byPair[domain.NameKey(ref.SubjectName, ref.TopicName)]; dup {
		return
	}
	i := len(ix.refs)
	ix.refs = append(ix.refs, ref)
	ix.topics[key] = t
	ix.subjects[key] = s
	if ref.TopicID != "" {
		ix.byID[ref.TopicID] = i
	}
	ix.byPair[domain.NameKey(ref.SubjectName, ref.TopicName)] = i
	name := normalize(ref.TopicName)
	ix.byName[name] = append(ix.byName[name], i)
}

// Refs returns every indexed topic in input order.
func (ix *TopicIndex) Refs() []domain.TopicRef {
	out := make([]domain.TopicRef, len(ix.refs))
	copy(out, ix.refs)
	return out
}

func (ix *TopicIndex) Len() int { return len(ix.refs) }

// Topic returns the input topic and its subject for a resolved ref.
func (ix *TopicIndex) Topic(ref domain.TopicRef) (domain.Topic, domain.Subject) {
	return ix.topics[ref.Key()], ix.subjects[ref.Key()]
}

// Resolve maps an (id, subject, topic) triple from a response to an input
// topic. A topic name alone resolves only when it is unique.
func (ix *TopicIndex) Resolve(id, subject, topic string) (domain.TopicRef, bool) {
	if i, ok := ix.byID[strings.TrimSpace(id)]; ok {
		return ix.refs[i], true
	}
	if i, ok := ix.byPair[domain.NameKey(subject, topic)]; ok {
		return ix.refs[i], true
	}
	if hits := ix.byName[normalize(topic)]; len(hits) == 1 {
		return ix.refs[hits[0]], true
	}
	return domain.TopicRef{}, false
}

// ResolveMention maps a free-text topic mention (an id, "Subject / Topic",
// "Subject: Topic" or a bare topic name) to an input topic. Bare names that
// occur in several subjects prefer subjectHint.
func (ix *TopicIndex) ResolveMention(mention, subjectHint string) (domain.TopicRef, bool) {
	mention = strings.TrimSpace(mention)
	if mention == "" {
		return domain.TopicRef{}, false
	}
	if i, ok := ix.byID[mention]; ok {
		return ix.refs[i], true
	}
	for _, sep := range []string{" / ", ": ", " - "} {
		if subj, topic, ok := strings.Cut(mention, sep); ok {
			if i, ok := ix.byPair[domain.NameKey(subj, topic)]; ok {
				return ix.refs[i], true
			}
		}
	}

	hits := ix.byName[normalize(mention)]
	switch len(hits) {
	case 0:
		return domain.TopicRef{}, false
	case 1:
		return ix.refs[hits[0]], true
	}
	for _, i := range hits {
		if strings.EqualFold(ix.refs[i].SubjectName, subjectHint) {
			return ix.refs[i], true
		}
	}
	return ix.refs[hits[0]], true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
