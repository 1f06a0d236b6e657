// Package docs embeds the user documentation, one markdown file per topic.
//
// readme.md is the index and is not a topic of its own.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var files embed.FS

const index = "readme"

// Topic returns the markdown of a topic. "*" is every topic, in List order.
func Topic(name string) (string, error) {
	if name == "*" {
		all, err := List()
		if err != nil {
			return "", err
		}
		return Topics(all...)
	}
	content, err := fs.ReadFile(files, name+".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, see 'pst topic' for the list of topics: %w", name, err)
	}
	return string(content), nil
}

// Topics returns the named topics one after the other.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintln(&b, content)
	}
	return b.String(), nil
}

// List returns the names of the topics in alphabetical order.
func List() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if ok && name != index {
			names = append(names, name)
		}
	}
	return names, nil
}
