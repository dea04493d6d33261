// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bufio"
	_ "embed"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength     = 8
	maxPasswordSimilarity = 0.7
)

//go:embed common_passwords.txt
var commonPasswordsFile string

var commonPasswords = loadCommonPasswords(commonPasswordsFile)

var nonWord = regexp.MustCompile(`\W+`)

func loadCommonPasswords(list string) map[string]struct{} {
	passwords := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(list))
	for scanner.Scan() {
		if p := strings.ToLower(strings.TrimSpace(scanner.Text())); p != "" {
			passwords[p] = struct{}{}
		}
	}
	return passwords
}

// passwordAttribute is a user attribute the password must not resemble.
type passwordAttribute struct {
	name  string
	value string
}

// passwordProblems applies the password policy and returns one message per
// violated rule.
func passwordProblems(password string, attributes ...passwordAttribute) []string {
	var problems []string

	for _, attr := range attributes {
		if tooSimilar(password, attr.value) {
			problems = append(problems, msgTooSimilar(attr.name))
			break
		}
	}

	if utf8.RuneCountInString(password) < minPasswordLength {
		problems = append(problems, MsgPasswordTooShort)
	}

	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		problems = append(problems, MsgPasswordCommon)
	}

	if isNumeric(password) {
		problems = append(problems, MsgPasswordNumeric)
	}

	return problems
}

// tooSimilar compares password with value and with each word of value.
func tooSimilar(password, value string) bool {
	if value == "" {
		return false
	}

	password = strings.ToLower(password)
	parts := append([]string{value}, nonWord.Split(value, -1)...)
	for _, part := range parts {
		if part == "" {
			continue
		}
		if quickRatio(password, strings.ToLower(part)) >= maxPasswordSimilarity {
			return true
		}
	}

	return false
}

// quickRatio is an upper bound on the similarity of a and b: twice the
// number of characters they share (as multisets) over their total length.
func quickRatio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}

	available := make(map[rune]int)
	for _, r := range b {
		available[r]++
	}

	matches := 0
	for _, r := range a {
		if available[r] > 0 {
			available[r]--
			matches++
		}
	}

	return 2 * float64(matches) / float64(total)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
