// Package luatable parses the hand-authored MediaWiki CGroup Lua module
// that maps English film titles to their Hong Kong release titles.
package luatable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Entry is one title mapping extracted from the table
type Entry struct {
	English   string `json:"english_name"`
	Cantonese string `json:"cantonese_name"`
	Line      int    `json:"line_number"`
}

// Table maps English titles to Cantonese titles
type Table map[string]string

// nonMovieSections mark where the CGroup module stops listing films and
// switches to awards, festivals, studios and conversion glue. Parsing
// stops at the first of these.
var nonMovieSections = []string{
	"==獎項、電影節==",
	"==虛構角色==",
	"==電影節及相關獎項==",
	"==製片廠及相關業者==",
	"==其他==",
	"==繁簡轉換==",
}

var (
	itemPattern = regexp.MustCompile(`Item\s*\(\s*['"]([^'"]+)['"],\s*['"]([^'"]+)['"]`)
	// zh-hk carries the Hong Kong title; zh-mo is the Macau fallback
	hkPattern = regexp.MustCompile(`zh-hk:([^;]+)`)
	moPattern = regexp.MustCompile(`zh-mo:([^;]+)`)
)

// CantoneseTitle extracts the Cantonese title from a conversion-rule
// string like "zh-tw:刺激1995;zh-hk:月黑高飛;zh-cn:肖申克的救赎;".
func CantoneseTitle(rules string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{hkPattern, moPattern} {
		if match := pattern.FindStringSubmatch(rules); match != nil {
			title := strings.TrimRight(strings.TrimSpace(match[1]), ";,")
			if title != "" {
				return title, true
			}
		}
	}
	return "", false
}

// parseItemLine extracts an entry from an Item() call. Lines without
// both an English title and a Cantonese conversion are skipped.
func parseItemLine(line string) (Entry, bool) {
	match := itemPattern.FindStringSubmatch(line)
	if match == nil {
		return Entry{}, false
	}

	english := strings.TrimSpace(match[1])
	if english == "" {
		return Entry{}, false
	}

	cantonese, ok := CantoneseTitle(strings.TrimSpace(match[2]))
	if !ok {
		return Entry{}, false
	}

	return Entry{English: english, Cantonese: cantonese}, true
}

// Parse reads a CGroup Lua module and returns the film title entries in
// file order, stopping at the first non-movie section.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if isNonMovieSection(line) {
			break
		}
		if strings.Contains(line, "type = 'text'") || strings.Contains(line, `type = "text"`) {
			continue
		}
		if !strings.HasPrefix(line, "Item(") {
			continue
		}

		if entry, ok := parseItemLine(line); ok {
			entry.Line = lineNum
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Lua table: %w", err)
	}

	return entries, nil
}

// ParseFile opens and parses a CGroup Lua file
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Lua table: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// ToTable collapses entries into an English-to-Cantonese lookup table.
// Later entries win so corrections appended to the module take effect.
func ToTable(entries []Entry) Table {
	table := make(Table, len(entries))
	for _, entry := range entries {
		table[entry.English] = entry.Cantonese
	}
	return table
}

func isNonMovieSection(line string) bool {
	for _, marker := range nonMovieSections {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
