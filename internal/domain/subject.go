package domain

import (
	"fmt"
	"strings"
)

// Topic is a single study topic inside a subject. Strong and weak are
// mutually exclusive by convention only.
type Topic struct {
	ID         string `json:"id,omitempty" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	IsStrong   bool   `json:"isStrong" yaml:"isStrong"`
	IsWeak     bool   `json:"isWeak" yaml:"isWeak"`
	Confidence int    `json:"confidence" yaml:"confidence"`
}

// Standing renders the strength flags as a single word.
func (t Topic) Standing() string {
	switch {
	case t.IsStrong:
		return "strong"
	case t.IsWeak:
		return "weak"
	default:
		return "neutral"
	}
}

// Subject groups topics under a credit weight and an overall confidence.
type Subject struct {
	ID         string  `json:"id,omitempty" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Credits    float64 `json:"credits" yaml:"credits"`
	Confidence int     `json:"confidence" yaml:"confidence"`
	Topics     []Topic `json:"topics" yaml:"topics"`
}

// TopicRef identifies a topic across pipeline stages. TopicID is the stable
// key; the names are kept for display and as a fallback match.
type TopicRef struct {
	TopicID     string `json:"topicId,omitempty"`
	TopicName   string `json:"topicName"`
	SubjectName string `json:"subjectName"`
}

func (r TopicRef) String() string {
	return r.SubjectName + " / " + r.TopicName
}

// Key returns the topic id, or the name pair when no id is set.
func (r TopicRef) Key() string {
	if r.TopicID != "" {
		return r.TopicID
	}
	return NameKey(r.SubjectName, r.TopicName)
}

// NameKey is the case-insensitive (subject, topic) pair used when a model
// response omits or garbles the topic id.
func NameKey(subjectName, topicName string) string {
	return strings.ToLower(strings.TrimSpace(subjectName)) + "\x00" + strings.ToLower(strings.TrimSpace(topicName))
}

// WithTopicIDs returns a copy of subjects where every subject and topic
// carries an id. Caller-supplied ids are kept; missing ones are assigned
// s01.. and t01.. in input order. The input slice is not modified.
func WithTopicIDs(subjects []Subject) []Subject {
	out := make([]Subject, len(subjects))
	seen := make(map[string]bool)
	for _, s := range subjects {
		for _, t := range s.Topics {
			if t.ID != "" {
				seen[t.ID] = true
			}
		}
	}

	next := 0
	for i, s := range subjects {
		cp := s
		if cp.ID == "" {
			cp.ID = fmt.Sprintf("s%02d", i+1)
		}
		cp.Topics = make([]Topic, len(s.Topics))
		for j, t := range s.Topics {
			if t.ID == "" {
				for {
					next++
					id := fmt.Sprintf("t%02d", next)
					if !seen[id] {
						t.ID = id
						seen[id] = true
						break
					}
				}
			}
			cp.Topics[j] = t
		}
		out[i] = cp
	}
	return out
}

// TopicCount returns the number of topics across all subjects.
func TopicCount(subjects []Subject) int {
	n := 0
	for _, s := range subjects {
		n += len(s.Topics)
	}
	return n
}
