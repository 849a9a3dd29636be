// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package chat

import (
	"strings"
)

// Topic pairs a keyword with the canned answer given when Gemini is
// unavailable.
type Topic struct {
	Keyword string
	Answer  string
}

// DefaultReply is returned when no keyword matches.
const DefaultReply = "I can help you understand bike-sharing demand patterns. Ask me about weather impact, " +
	"peak hours, seasonal trends, temperature effects, or any other factors affecting bike demand."

// FallbackTopics is the keyword table, in priority order.
var FallbackTopics = []Topic{
	{"weather", "Weather has a significant impact on bike demand. Clear weather typically increases rentals " +
		"by 30-40% compared to cloudy conditions. Temperature between 18-25°C shows the highest correlation " +
		"with bike demand, while rain and snow substantially reduce usage."},
	{"peak", "Bike demand typically peaks during commute hours: 7-9 AM and 5-7 PM on working days. Weekend " +
		"demand is generally 15-20% higher than weekdays, especially during good weather conditions."},
	{"demand", "Bike demand depends on multiple factors: weather conditions, time of day, season, and whether " +
		"it's a working day. Summer months (June-August) see higher demand than winter. Working days have " +
		"distinct morning and evening peaks."},
	{"season", "Seasonal patterns show peak demand in summer (June-August), moderate demand in spring and fall, " +
		"and lower demand in winter. Holiday periods show different patterns with delayed morning peaks and " +
		"more evenly distributed usage."},
	{"temperature", "Temperature is a key factor in bike-sharing demand. Optimal conditions are between 18-25°C. " +
		"Demand decreases significantly in cold weather (below 5°C) and extremely hot weather (above 35°C)."},
	{"humidity", "High humidity can reduce bike demand as it makes cycling less comfortable. The combined effect " +
		"of temperature and humidity (temp-humidity index) is more predictive than temperature alone."},
	{"working", "Working days show distinct patterns with clear commute peaks at 7-9 AM and 5-7 PM. Non-working " +
		"days and holidays have more distributed demand throughout the day."},
	{"weekend", "Weekends typically show 15-20% higher overall bike demand than weekdays, with peaks later in " +
		"the morning (around 11 AM-2 PM) rather than during strict commute hours."},
}

// KeywordMatcher finds the highest-priority topic mentioned in a message.
// It is an Aho-Corasick automaton over the lowercased keywords, so a message
// is scanned once regardless of table size. Safe for concurrent use after
// construction.
type KeywordMatcher struct {
	root   *acNode
	topics []Topic
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // topic indices ending here, including via failure links
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// NewKeywordMatcher builds a matcher over topics. Earlier topics win.
func NewKeywordMatcher(topics []Topic) *KeywordMatcher {
	m := &KeywordMatcher{
		root:   newACNode(),
		topics: append([]Topic(nil), topics...),
	}
	for i, t := range m.topics {
		m.insert(i, strings.ToLower(t.Keyword))
	}
	m.buildFailureLinks()
	return m
}

func (m *KeywordMatcher) insert(index int, keyword string) {
	if keyword == "" {
		return
	}
	node := m.root
	for _, ch := range keyword {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// buildFailureLinks wires suffix links breadth-first.
func (m *KeywordMatcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// Match returns the earliest topic in table order whose keyword occurs in
// text, case-insensitively.
func (m *KeywordMatcher) Match(text string) (Topic, bool) {
	best := -1
	node := m.root
	for _, ch := range strings.ToLower(text) {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		for _, idx := range node.output {
			if best < 0 || idx < best {
				best = idx
			}
		}
		if best == 0 {
			break
		}
	}
	if best < 0 {
		return Topic{}, false
	}
	return m.topics[best], true
}

// Fallback answers message from the keyword table or DefaultReply.
func (m *KeywordMatcher) Fallback(message string) string {
	if t, ok := m.Match(message); ok {
		return t.Answer
	}
	return DefaultReply
}
