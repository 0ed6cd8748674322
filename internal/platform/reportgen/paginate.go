// Package reportgen turns structured clinical sections into paginated,
// printable report pages and the styled HTML handed to the PDF converter.
package reportgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxCharsPerPage is the page budget used when the caller does not
// supply one.
const DefaultMaxCharsPerPage = 1800

// titleOverhead reserves room on each page for the title and page chrome.
const titleOverhead = 40

// Section is one titled chunk of report text to be laid out.
type Section struct {
	Title   string `json:"titulo"`
	Content string `json:"conteudo"`
}

// Page is one laid-out report page. Numbers increase monotonically across
// sections, starting after the summary page.
type Page struct {
	Number  int    `json:"numero"`
	Title   string `json:"titulo"`
	Content string `json:"conteudo"`
}

// Paginate splits sections into fixed-budget pages. A section that fits its
// budget becomes a single page; longer sections are packed greedily word by
// word, never splitting mid-word, with continuation pages titled
// "{titulo} (cont.)". startPage values below 2 default to 2 (page 1 is the
// summary).
func Paginate(sections []Section, maxCharsPerPage, startPage int) []Page {
	if maxCharsPerPage <= 0 {
		maxCharsPerPage = DefaultMaxCharsPerPage
	}
	if startPage < 2 {
		startPage = 2
	}

	pages := []Page{}
	number := startPage
	for _, sec := range sections {
		budget := maxCharsPerPage - utf8.RuneCountInString(sec.Title) - titleOverhead
		if budget < 1 {
			budget = 1
		}
		if utf8.RuneCountInString(sec.Content) <= budget {
			pages = append(pages, Page{Number: number, Title: sec.Title, Content: sec.Content})
			number++
			continue
		}
		for i, chunk := range packWords(sec.Content, budget) {
			title := sec.Title
			if i > 0 {
				title = sec.Title + " (cont.)"
			}
			pages = append(pages, Page{Number: number, Title: title, Content: chunk})
			number++
		}
	}
	return pages
}

// packWords greedily fills chunks with whitespace-delimited words up to
// budget runes each. A single word longer than the budget still gets its own
// chunk whole; words are never split.
func packWords(content string, budget int) []string {
	words := strings.Fields(content)
	if len(words) == 0 {
		return []string{""}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		sep := 0
		if currentLen > 0 {
			sep = 1
		}
		if currentLen > 0 && currentLen+sep+wordLen > budget {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
			sep = 0
		}
		if sep == 1 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// SummaryPage builds the table-of-contents page (page 1) from the laid-out
// pages. The summary does not list itself.
func SummaryPage(pages []Page) Page {
	var b strings.Builder
	for i, p := range pages {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "• %s ............. página %d", p.Title, p.Number)
	}
	return Page{Number: 1, Title: "Sumário", Content: b.String()}
}
