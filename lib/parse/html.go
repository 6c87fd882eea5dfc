// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import "strings"

// stripHTMLTags removes HTML tags and comments, keeping text content.
func stripHTMLTags(html string) string {
	var result strings.Builder
	for len(html) > 0 {
		if strings.HasPrefix(html, "<!--") {
			end := strings.Index(html[4:], "-->")
			if end < 0 {
				return result.String()
			}
			html = html[4+end+3:]
			continue
		}
		if html[0] == '<' {
			end := strings.IndexByte(html, '>')
			if end < 0 {
				return result.String()
			}
			html = html[end+1:]
			continue
		}
		next := strings.IndexByte(html, '<')
		if next < 0 {
			next = len(html)
		}
		result.WriteString(html[:next])
		html = html[next:]
	}
	return result.String()
}
