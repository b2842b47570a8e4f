package studyloop

import (
	"sort"
	"strings"
)

// MaxExpectedGroups caps the answer key so the follow-up stays achievable.
const MaxExpectedGroups = 8

// precisionDirective is appended to the prompt for the advanced tier.
const precisionDirective = "Be precise and concise."

var (
	defaultExampleGroup   = KeywordGroup{"example", "for example"}
	defaultReasoningGroup = KeywordGroup{"because", "therefore"}
)

// MakeFollowUp generates the Study Loop follow-up question and its
// expected-keyword answer key for a student question. It is a pure
// function: identical inputs always yield identical output.
func MakeFollowUp(level Level, subject, question string) FollowUp {
	qtype := Classify(question)
	topic := DetectTopic(subject, question)
	tpl := lookupTemplate(subject, topic, qtype)

	prompt := tpl.question
	if level == LevelACSEE {
		prompt += " " + precisionDirective
	}

	// Assembly order matters: structure groups first, then the sharper
	// topic bank, then the subject-general fallback bank.
	groups := make([]KeywordGroup, 0, MaxExpectedGroups)
	groups = append(groups, tpl.structure...)
	if topic != TopicGeneral {
		groups = append(groups, topicBank(subject, topic)...)
	}
	groups = append(groups, subjectBank(subject, qtype)...)

	groups = dedupeGroups(groups)
	if len(groups) > MaxExpectedGroups {
		groups = groups[:MaxExpectedGroups]
	}
	// Never hand back an unachievable (near-empty) key.
	if len(groups) < 2 {
		groups = appendUnlessDuplicate(groups, defaultExampleGroup)
	}
	if len(groups) < 2 {
		groups = appendUnlessDuplicate(groups, defaultReasoningGroup)
	}

	return FollowUp{
		Question: prompt,
		Expected: groups,
		QType:    qtype,
		Topic:    topic,
	}
}

// groupKey builds a canonical identity for a group: the normalized, sorted
// member set. Two groups with the same key are duplicates.
func groupKey(g KeywordGroup) string {
	members := make([]string, 0, len(g))
	for _, m := range g {
		members = append(members, Normalize(m))
	}
	sort.Strings(members)
	return strings.Join(members, "|")
}

func dedupeGroups(groups []KeywordGroup) []KeywordGroup {
	seen := make(map[string]struct{}, len(groups))
	out := make([]KeywordGroup, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		key := groupKey(g)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, g)
	}
	return out
}

func appendUnlessDuplicate(groups []KeywordGroup, g KeywordGroup) []KeywordGroup {
	key := groupKey(g)
	for _, existing := range groups {
		if groupKey(existing) == key {
			return groups
		}
	}
	return append(groups, g)
}
